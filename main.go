package main

import "budgetable/cmd"

func main() {
	cmd.Execute()
}
