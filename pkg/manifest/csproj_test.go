package manifest

import (
	"slices"
	"testing"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

func TestParseCsProj(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []soup.Key
	}{
		{
			name: "single reference",
			content: `<Project Sdk="Microsoft.NET.Sdk.Web">
    <ItemGroup>
        <PackageReference Include="Foo" Version="1.2.1" />
    </ItemGroup>
</Project>`,
			want: []soup.Key{{Name: "Foo", Version: "1.2.1"}},
		},
		{
			name: "two references",
			content: `<Project>
    <ItemGroup>
        <PackageReference Include="Azure.Messaging.ServiceBus" Version="7.2.1" />
        <PackageReference Include="Newtonsoft.Json" Version="13.0.1"></PackageReference>
    </ItemGroup>
</Project>`,
			want: []soup.Key{
				{Name: "Azure.Messaging.ServiceBus", Version: "7.2.1"},
				{Name: "Newtonsoft.Json", Version: "13.0.1"},
			},
		},
		{
			name: "identical references deduplicated",
			content: `<Project>
    <ItemGroup>
        <PackageReference Include="Foo" Version="1.2.1" />
        <PackageReference Include="Foo" Version="1.2.1"/>
    </ItemGroup>
</Project>`,
			want: []soup.Key{{Name: "Foo", Version: "1.2.1"}},
		},
		{
			name:    "declared utf-8",
			content: `<?xml version="1.0" encoding="utf-8"?><Project><PackageReference Include="Foo" Version="1.0" /></Project>`,
			want:    []soup.Key{{Name: "Foo", Version: "1.0"}},
		},
		{
			name:    "no references",
			content: `<Project Sdk="Microsoft.NET.Sdk"><PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup></Project>`,
			want:    []soup.Key{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse(CsProj, tt.content, soup.Metadata{})
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := keys(set); !slices.Equal(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCsProj_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{
			name:    "missing version",
			content: `<Project><PackageReference Include="Foo" /></Project>`,
			code:    errors.ErrCodeMissingAttribute,
		},
		{
			name:    "missing include",
			content: `<Project><PackageReference Version="1.0" /></Project>`,
			code:    errors.ErrCodeMissingAttribute,
		},
		{
			name:    "empty include",
			content: `<Project><PackageReference Include="" Version="1.0" /></Project>`,
			code:    errors.ErrCodeMissingAttribute,
		},
		{
			name:    "unterminated tag",
			content: `<Project><ItemGroup><PackageReference Include="Foo" Version="1.0" />`,
			code:    errors.ErrCodeInvalidStructure,
		},
		{
			name:    "mismatched tag",
			content: `<Project><ItemGroup></Project>`,
			code:    errors.ErrCodeInvalidStructure,
		},
		{
			name:    "unsupported declared encoding",
			content: `<?xml version="1.0" encoding="windows-1252"?><Project></Project>`,
			code:    errors.ErrCodeAttributeEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(CsProj, tt.content, nil)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}
