package client

import (
	"context"

	"github.com/dmitrijs2005/arabica/internal/authrpc"
)

type Client interface {
	Close() error
	Register(ctx context.Context, email, password, name string) (*authrpc.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*authrpc.AuthResponse, error)
	Check(ctx context.Context, token string) (*authrpc.User, error)
	Logout(ctx context.Context, token string) error
	Sessions(ctx context.Context, token string) ([]authrpc.Session, error)
	Ping(ctx context.Context) error
}
