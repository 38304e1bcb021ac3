// Package script defines the kernel's instruction set: Operation (a sum
// type of 14 concrete operation structs, Suspend included), Script (an
// immutable, shareable sequence of operations), Builder (a fluent assembly
// API for frontends), and the Expression contract a host implements to
// supply pure stack-effect expressions. Building scripted Functions from
// a Script is done in pkg/vm.
package script
