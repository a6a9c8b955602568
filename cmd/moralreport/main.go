// Package main provides the moralreport CLI.
//
// Usage:
//
//	moralreport serve
//	moralreport render --input result.json --dir out/
//	moralreport inspect Hasil_Tes_20261019_083015.docx
//
// See --help for all available options.
package main

import (
	_ "time/tzdata"
)

func main() {
	Execute()
}
