// Package docs registers the OpenAPI document served under /swagger/.
// The template mirrors the swag annotations on the server handlers;
// regenerate it with go generate ./docs after changing them.
package docs

//go:generate go run github.com/swaggo/swag/cmd/swag init -d ../ -g cmd/assignsync/main.go -o . --outputTypes go
