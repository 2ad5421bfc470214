package main

import "github.com/mytheresa/go-storefront/app/commands"

func main() {
	commands.Execute()
}
