package main

import (
	"encoding/json"
	"fmt"
)

// printResult dumps v as indented JSON. Output formatting is out of
// scope per spec.md §1; this exists only so a subcommand's result is
// visible on stdout.
func printResult(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
