/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package main

import "github.com/ortuman/rabber/cmd/rabberctl/ctlv1"

func main() {
	ctlv1.MustStart()
}
