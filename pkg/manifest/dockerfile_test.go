package manifest

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/souper/pkg/soup"
)

func TestParseDockerBase(t *testing.T) {
	digest := "sha256:" + strings.Repeat("a", 64)

	tests := []struct {
		name    string
		content string
		want    []soup.Key
	}{
		{
			name:    "simple",
			content: "\nFROM postgres:14.4\n",
			want:    []soup.Key{{Name: "postgres", Version: "14.4"}},
		},
		{
			name:    "registry with port and alias",
			content: "FROM mcr.example.com:443/dotnet/sdk:6.0 AS build",
			want:    []soup.Key{{Name: "mcr.example.com:443/dotnet/sdk", Version: "6.0"}},
		},
		{
			name:    "registry without port",
			content: "FROM mcr.microsoft.com/dotnet/sdk:6.0 AS build-env",
			want:    []soup.Key{{Name: "mcr.microsoft.com/dotnet/sdk", Version: "6.0"}},
		},
		{
			name:    "case insensitive keywords",
			content: "from node:18-alpine as deps",
			want:    []soup.Key{{Name: "node", Version: "18-alpine"}},
		},
		{
			name:    "platform flag",
			content: "FROM --platform=linux/amd64 golang:1.22 AS builder",
			want:    []soup.Key{{Name: "golang", Version: "1.22"}},
		},
		{
			name:    "digest",
			content: "FROM alpine@" + digest,
			want:    []soup.Key{{Name: "alpine", Version: digest}},
		},
		{
			name:    "tag and digest",
			content: "FROM nginx:1.25@" + digest,
			want:    []soup.Key{{Name: "nginx", Version: "1.25@" + digest}},
		},
		{
			name: "multi-stage",
			content: `FROM golang:1.22 AS build
RUN go build ./...

FROM build AS test
FROM debian:12-slim
COPY --from=build /app /app
`,
			want: []soup.Key{{Name: "debian", Version: "12-slim"}, {Name: "golang", Version: "1.22"}},
		},
		{
			name:    "crlf line endings",
			content: "FROM postgres:14.4\r\nFROM redis:7\r\n",
			want:    []soup.Key{{Name: "postgres", Version: "14.4"}, {Name: "redis", Version: "7"}},
		},
		{
			name:    "scratch ignored",
			content: "FROM scratch",
			want:    []soup.Key{},
		},
		{
			name:    "untagged ignored",
			content: "FROM ubuntu",
			want:    []soup.Key{},
		},
		{
			name:    "short digest kept verbatim",
			content: "FROM alpine@sha256:abc",
			want:    []soup.Key{{Name: "alpine", Version: "sha256:abc"}},
		},
		{
			name:    "unknown algorithm kept verbatim",
			content: "FROM nginx:1.25@md5:0123abcd AS web",
			want:    []soup.Key{{Name: "nginx", Version: "1.25@md5:0123abcd"}},
		},
		{
			name:    "build arg ignored",
			content: "FROM ${BASE_IMAGE}:latest",
			want:    []soup.Key{},
		},
		{
			name:    "trailing garbage ignored",
			content: "FROM postgres:14.4 extra",
			want:    []soup.Key{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse(DockerBase, tt.content, soup.Metadata{})
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := keys(set); !slices.Equal(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDockerBase_DefaultMetadata(t *testing.T) {
	set, _ := Parse(DockerBase, "FROM postgres:14.4", soup.NewMetadata("requirements"))
	d, ok := set.Get(soup.Key{Name: "postgres", Version: "14.4"})
	if !ok {
		t.Fatal("postgres missing")
	}
	if !d.Meta.Equal(soup.Metadata{"requirements": ""}) {
		t.Errorf("Meta = %v, want default metadata", d.Meta)
	}
}
