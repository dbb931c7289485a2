package authrpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	// registers the well-known files the schema depends on
	_ "google.golang.org/protobuf/types/known/emptypb"
	_ "google.golang.org/protobuf/types/known/timestamppb"
)

const (
	protoPackage = "arabica.auth.v1"
	protoFile    = "arabica/auth/v1/auth.proto"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindMessage
	kindRepeatedMessage
)

type fieldSpec struct {
	name     string
	number   int32
	kind     fieldKind
	typeName string
}

func field(name string, number int32, kind fieldKind, typeName ...string) fieldSpec {
	f := fieldSpec{name: name, number: number, kind: kind}
	if len(typeName) > 0 {
		f.typeName = typeName[0]
	}
	return f
}

func message(name string, fields ...fieldSpec) *descriptorpb.DescriptorProto {
	m := &descriptorpb.DescriptorProto{Name: proto.String(name)}
	for _, f := range fields {
		fd := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(f.name),
			Number: proto.Int32(f.number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		}
		switch f.kind {
		case kindString:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
		case kindBool:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_BOOL.Enum()
		case kindMessage, kindRepeatedMessage:
			fd.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
			fd.TypeName = proto.String(f.typeName)
		}
		if f.kind == kindRepeatedMessage {
			fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
		}
		m.Field = append(m.Field, fd)
	}
	return m
}

func method(name, input, output string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(input),
		OutputType: proto.String(output),
	}
}

const (
	typeEmpty     = ".google.protobuf.Empty"
	typeTimestamp = ".google.protobuf.Timestamp"
	typeUser      = "." + protoPackage + ".User"
	typeSession   = "." + protoPackage + ".Session"
	typeAuth      = "." + protoPackage + ".AuthResponse"
)

// fileProto is the auth.proto schema of the service.
func fileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String(protoPackage),
		Syntax:     proto.String("proto3"),
		Dependency: []string{"google/protobuf/empty.proto", "google/protobuf/timestamp.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			message("RegisterRequest",
				field("email", 1, kindString),
				field("password", 2, kindString),
				field("name", 3, kindString),
			),
			message("LoginRequest",
				field("email", 1, kindString),
				field("password", 2, kindString),
			),
			message("User",
				field("id", 1, kindString),
				field("name", 2, kindString),
				field("email", 3, kindString),
			),
			message("AuthResponse",
				field("user", 1, kindMessage, typeUser),
				field("token", 2, kindString),
				field("expires_in", 3, kindString),
				field("expires_at", 4, kindMessage, typeTimestamp),
			),
			message("CheckResponse",
				field("user", 1, kindMessage, typeUser),
			),
			message("Session",
				field("id", 1, kindString),
				field("user_agent", 2, kindString),
				field("ip", 3, kindString),
				field("created_at", 4, kindMessage, typeTimestamp),
				field("current", 5, kindBool),
			),
			message("SessionsResponse",
				field("sessions", 1, kindRepeatedMessage, typeSession),
			),
			message("PingResponse",
				field("status", 1, kindString),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("AuthService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Register", "."+protoPackage+".RegisterRequest", typeAuth),
				method("Login", "."+protoPackage+".LoginRequest", typeAuth),
				method("Check", typeEmpty, "."+protoPackage+".CheckResponse"),
				method("Logout", typeEmpty, typeEmpty),
				method("Sessions", typeEmpty, "."+protoPackage+".SessionsResponse"),
				method("Ping", typeEmpty, "."+protoPackage+".PingResponse"),
			},
		}},
	}
}

func buildFile() (protoreflect.FileDescriptor, error) {
	fd, err := protodesc.NewFile(fileProto(), protoregistry.GlobalFiles)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", protoFile, err)
	}
	return fd, nil
}

// File is the compiled descriptor of auth.proto.
var File = mustBuildFile()

func mustBuildFile() protoreflect.FileDescriptor {
	fd, err := buildFile()
	if err != nil {
		panic(err)
	}
	return fd
}

func messageDescriptor(name protoreflect.Name) protoreflect.MessageDescriptor {
	md := File.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("%s: message %s not declared", protoFile, name))
	}
	return md
}
