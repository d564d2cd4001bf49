package builder

import (
	"testing"

	"github.com/containerd/errdefs"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "minimum supported",
			out:  "2.4-dist",
			want: "2.4.0",
		},
		{
			name: "above minimum",
			out:  "2.6.1-dist",
			want: "2.6.1",
		},
		{
			name: "plain version without dist suffix",
			out:  "3.8.7",
			want: "3.8.7",
		},
		{
			name: "trailing newline",
			out:  "2.5.2-dist\n",
			want: "2.5.2",
		},
		{
			name:    "below minimum",
			out:     "2.3-dist",
			wantErr: true,
		},
		{
			name:    "non-numeric version text",
			out:     "devel-dist",
			wantErr: true,
		},
		{
			name:    "empty output",
			out:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseVersion(tt.out)
			if tt.wantErr {
				if !errdefs.IsFailedPrecondition(err) {
					t.Fatalf("parseVersion(%q) error = %v, want failed precondition", tt.out, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVersion(%q) returned error: %v", tt.out, err)
			}
			if v.String() != tt.want {
				t.Fatalf("parseVersion(%q) = %s, want %s", tt.out, v, tt.want)
			}
		})
	}
}
