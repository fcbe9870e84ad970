package main

import "github.com/WagnerRodrigues181/nutri-lens/cmd/nutrilens"

func main() {
	nutrilens.Execute()
}
