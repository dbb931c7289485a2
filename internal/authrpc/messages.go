package authrpc

import (
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// The structs below are the Go view of the auth.proto messages. On the wire
// they travel as protobuf through the descriptors in File.

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

type LoginRequest struct {
	Email    string
	Password string
}

type User struct {
	ID    string
	Name  string
	Email string
}

// AuthResponse is returned by Register and Login. Token is the raw JWT,
// without the Bearer scheme.
type AuthResponse struct {
	User      User
	Token     string
	ExpiresIn string
	ExpiresAt time.Time
}

type CheckResponse struct {
	User User
}

type Session struct {
	ID        string
	UserAgent string
	IP        string
	CreatedAt time.Time
	Current   bool
}

type SessionsResponse struct {
	Sessions []Session
}

type PingResponse struct {
	Status string
}

// wire converts one Go message type to and from its protobuf form.
type wire[T any] struct {
	new    func() proto.Message
	encode func(*T) proto.Message
	decode func(proto.Message) *T
}

func dynamicWire[T any](name protoreflect.Name, put func(*T, protoreflect.Message), get func(protoreflect.Message, *T)) wire[T] {
	desc := messageDescriptor(name)
	return wire[T]{
		new: func() proto.Message { return dynamicpb.NewMessage(desc) },
		encode: func(v *T) proto.Message {
			m := dynamicpb.NewMessage(desc)
			if v != nil {
				put(v, m)
			}
			return m
		},
		decode: func(pm proto.Message) *T {
			out := new(T)
			get(pm.ProtoReflect(), out)
			return out
		},
	}
}

var emptyWire = wire[emptypb.Empty]{
	new: func() proto.Message { return &emptypb.Empty{} },
	encode: func(e *emptypb.Empty) proto.Message {
		if e == nil {
			return &emptypb.Empty{}
		}
		return e
	},
	decode: func(pm proto.Message) *emptypb.Empty {
		if e, ok := pm.(*emptypb.Empty); ok {
			return e
		}
		return &emptypb.Empty{}
	},
}

var (
	registerWire = dynamicWire("RegisterRequest",
		func(v *RegisterRequest, m protoreflect.Message) {
			setString(m, "email", v.Email)
			setString(m, "password", v.Password)
			setString(m, "name", v.Name)
		},
		func(m protoreflect.Message, v *RegisterRequest) {
			v.Email = getString(m, "email")
			v.Password = getString(m, "password")
			v.Name = getString(m, "name")
		})

	loginWire = dynamicWire("LoginRequest",
		func(v *LoginRequest, m protoreflect.Message) {
			setString(m, "email", v.Email)
			setString(m, "password", v.Password)
		},
		func(m protoreflect.Message, v *LoginRequest) {
			v.Email = getString(m, "email")
			v.Password = getString(m, "password")
		})

	authWire = dynamicWire("AuthResponse",
		func(v *AuthResponse, m protoreflect.Message) {
			putUser(m.Mutable(fieldOf(m, "user")).Message(), v.User)
			setString(m, "token", v.Token)
			setString(m, "expires_in", v.ExpiresIn)
			setTime(m, "expires_at", v.ExpiresAt)
		},
		func(m protoreflect.Message, v *AuthResponse) {
			v.User = getUser(m, "user")
			v.Token = getString(m, "token")
			v.ExpiresIn = getString(m, "expires_in")
			v.ExpiresAt = getTime(m, "expires_at")
		})

	checkWire = dynamicWire("CheckResponse",
		func(v *CheckResponse, m protoreflect.Message) {
			putUser(m.Mutable(fieldOf(m, "user")).Message(), v.User)
		},
		func(m protoreflect.Message, v *CheckResponse) {
			v.User = getUser(m, "user")
		})

	sessionsWire = dynamicWire("SessionsResponse",
		func(v *SessionsResponse, m protoreflect.Message) {
			if len(v.Sessions) == 0 {
				return
			}
			list := m.Mutable(fieldOf(m, "sessions")).List()
			for _, s := range v.Sessions {
				el := list.NewElement()
				sm := el.Message()
				setString(sm, "id", s.ID)
				setString(sm, "user_agent", s.UserAgent)
				setString(sm, "ip", s.IP)
				setTime(sm, "created_at", s.CreatedAt)
				if s.Current {
					sm.Set(fieldOf(sm, "current"), protoreflect.ValueOfBool(true))
				}
				list.Append(el)
			}
		},
		func(m protoreflect.Message, v *SessionsResponse) {
			list := m.Get(fieldOf(m, "sessions")).List()
			v.Sessions = make([]Session, 0, list.Len())
			for i := 0; i < list.Len(); i++ {
				sm := list.Get(i).Message()
				v.Sessions = append(v.Sessions, Session{
					ID:        getString(sm, "id"),
					UserAgent: getString(sm, "user_agent"),
					IP:        getString(sm, "ip"),
					CreatedAt: getTime(sm, "created_at"),
					Current:   sm.Get(fieldOf(sm, "current")).Bool(),
				})
			}
		})

	pingWire = dynamicWire("PingResponse",
		func(v *PingResponse, m protoreflect.Message) {
			setString(m, "status", v.Status)
		},
		func(m protoreflect.Message, v *PingResponse) {
			v.Status = getString(m, "status")
		})
)

func fieldOf(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil {
		panic("authrpc: " + string(m.Descriptor().FullName()) + " has no field " + string(name))
	}
	return fd
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v == "" {
		return
	}
	m.Set(fieldOf(m, name), protoreflect.ValueOfString(v))
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(fieldOf(m, name)).String()
}

func setTime(m protoreflect.Message, name protoreflect.Name, t time.Time) {
	if t.IsZero() {
		return
	}
	m.Set(fieldOf(m, name), protoreflect.ValueOfMessage(timestamppb.New(t).ProtoReflect()))
}

// getTime reads a google.protobuf.Timestamp field by its seconds and nanos,
// which works whether the value decoded as a concrete or a dynamic message.
func getTime(m protoreflect.Message, name protoreflect.Name) time.Time {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return time.Time{}
	}
	ts := m.Get(fd).Message()
	sec := ts.Get(fieldOf(ts, "seconds")).Int()
	nanos := ts.Get(fieldOf(ts, "nanos")).Int()
	return time.Unix(sec, nanos).UTC()
}

func putUser(m protoreflect.Message, u User) {
	setString(m, "id", u.ID)
	setString(m, "name", u.Name)
	setString(m, "email", u.Email)
}

func getUser(m protoreflect.Message, name protoreflect.Name) User {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return User{}
	}
	um := m.Get(fd).Message()
	return User{ID: getString(um, "id"), Name: getString(um, "name"), Email: getString(um, "email")}
}
