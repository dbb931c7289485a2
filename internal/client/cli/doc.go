// Package cli implements the arabica command-line client.
//
// Usage:
//
//	arabica-cli [-a host:port] [-r seconds] [-token TOKEN] <command>
//
// Commands:
//
//	register   create an account and open a session
//	login      open a new session
//	check      show the user behind the token
//	logout     close the session of the token
//	sessions   list the active sessions of the token's user
//	ping       check that the server answers
//
// Email and name are read from stdin, passwords from the terminal without
// echo. Protected commands take the token from -token or ARABICA_TOKEN.
package cli
