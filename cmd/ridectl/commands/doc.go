// Package commands implements the ridectl command tree: listing, searching and posting
// ride offers against the same snapshot backend the server uses.
package commands
