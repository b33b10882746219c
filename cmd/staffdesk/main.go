// cmd/staffdesk/main.go
//
// staffdesk – command-line entry point.  Everything lives in the cmd
// package; main only hands over control.
package main

import "github.com/yanizio/staffdesk/cmd/staffdesk/cmd"

func main() { cmd.Execute() }
