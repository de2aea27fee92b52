package main

import "github.com/llehouerou/saavn/internal/cli"

func main() {
	cli.Execute()
}
