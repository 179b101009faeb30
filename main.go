package main

import "github.com/fiorix/wsdlmodel/internal/cli"

func main() {
	cli.Execute()
}
