// Package repository persists domain entities as JSON documents in the
// document store, one collection per entity kind.
package repository

const (
	UsersCollection   = "users"
	QuizzesCollection = "quizzes"
	ResultsCollection = "results"
)
