// Package model provides the data structures shared between the textops
// core and its observers. It describes steps and runs as seen from the
// outside and defines the hook interface measure and drawer implement.
package model
