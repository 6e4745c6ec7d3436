package main

import "github.com/lu-zhengda/mailpane/internal/cli"

func main() {
	cli.Execute()
}
