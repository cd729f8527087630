// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), Root())
}
