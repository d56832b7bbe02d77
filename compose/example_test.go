package compose_test

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zostay/postbox/compose"
	"github.com/zostay/postbox/message/header"
)

func ExampleCompile() {
	m := compose.New(
		compose.From("a@x.com"),
		compose.To("b@x.com"),
		compose.Subject("Hi"),
		compose.Body("hello"),
		compose.Date(time.Date(2023, 3, 14, 15, 9, 26, 0, time.UTC)),
	)

	env, err := compose.Compile(m, compose.WithBreak(header.LF))
	if err != nil {
		panic(err)
	}

	fmt.Println(env.Sender, env.Recipients)
	_, _ = env.WriteTo(os.Stdout)
	// Output:
	// a@x.com [b@x.com]
	// From: a@x.com
	// To: b@x.com
	// Subject: Hi
	// Date: Tue, 14 Mar 2023 15:09:26 +0000
	// MIME-Version: 1.0
	// Content-Type: text/plain; charset=utf-8
	// Content-Transfer-Encoding: 7bit
	// Content-Disposition: inline
	//
	// hello
}

func ExampleMessage_AddInline() {
	m := compose.New(
		compose.From("Ann <ann@x.com>"),
		compose.To("Bob <bob@x.com>"),
		compose.Cc("carol@x.com"),
		compose.Subject("3 - Inline Image"),
		compose.HTML(`Image <img src="cid:foo.png"> inline`),
	)
	m.AddInline("foo.png", []byte{0x89, 'P', 'N', 'G'}, "")

	env, err := m.Compile()
	if err != nil {
		panic(err)
	}

	fmt.Println(env.Recipients)
	fmt.Println(strings.Contains(env.String(), "Content-Type: multipart/related;"))
	fmt.Println(strings.Contains(env.String(), "Content-ID: <foo.png>"))
	// Output:
	// [Bob <bob@x.com> carol@x.com]
	// true
	// true
}
