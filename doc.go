/*
Package cascade is a regular-expression based HTTP request router where every
matching route runs, in registration order, so middleware and handlers are
the same mechanism.

A trivial example is:

	package main

	import (
		"fmt"
		"log"
		"net/http"

		"github.com/pedia/cascade"
	)

	func main() {
		router := cascade.New()

		router.Use(func(c *cascade.Context) error {
			c.Response.Header().Set("X-Router", "cascade")
			return nil
		})

		router.GET("/hello/[a:name]", func(c *cascade.Context) error {
			return c.WriteString(fmt.Sprintf("hello, %s!\n", c.Param("name")))
		})

		log.Fatal(http.ListenAndServe(":8080", router))
	}

The pattern syntax is literal text plus placeholder blocks:

	Syntax          Path              Captures
	/posts/[i:id]   /posts/42         id=42
	/u/[a:name]     /u/gopher         name=gopher
	/b/[h:sha]      /b/deadbeef       sha=deadbeef
	/t/[s:slug]     /t/go_1-21        slug=go_1-21
	/p/[:seg]       /p/anything       seg=anything
	/f/[**:rest]    /f/a/b/c.txt      rest=a/b/c.txt
	/d/[up|down:x]  /d/up             x=up

A trailing "?" makes a block optional together with the separator before it,
so "/posts/[i:id]/[s:slug]?" accepts both "/posts/7" and "/posts/7/welcome".
A leading "@" switches the whole pattern to a raw, unanchored regular
expression; a leading "!" inverts whether the path counts as matched.

Routes run in order for as long as the pass lasts. A handler steers the rest
of the pass by returning cascade.SkipThis, cascade.SkipRemaining or
cascade.SkipNext(n), aborts with an explicit status through cascade.Abort,
or fails with a plain error, which enters the router's error chain. When no
counting route matched, the router answers 404, or 405 with an Allow header
when only the method was wrong.

Named routes generate paths back out of their patterns:

	router.GET("/posts/[i:id]", showPost).SetName("post")
	path, _ := router.PathFor("post", map[string]string{"id": "7"})
	// path == "/posts/7"

The router serves net/http through ServeHTTP and fasthttp through
HandleFastHTTP, or runs without any server through Dispatch, which is what
tests want.
*/
package cascade
