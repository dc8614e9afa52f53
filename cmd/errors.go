package main

import "errors"

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage")
