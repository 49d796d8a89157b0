package gopaginate

import (
	"net/url"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_RawOptions_Decode(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawOptions
		want    *Options
		wantErr bool
	}{
		{
			name: "empty",
			raw:  RawOptions{},
			want: &Options{Route: "/users"},
		},
		{
			name: "take and skip",
			raw:  RawOptions{Page: "2", Limit: 20, PaginationType: "take", CountQueries: lo.ToPtr(false)},
			want: &Options{
				Page:           "2",
				Limit:          20,
				Route:          "/users",
				PaginationType: PaginationTypeTakeAndSkip,
				CountQueries:   lo.ToPtr(false),
			},
		},
		{
			name: "garbage page is kept for later fallback",
			raw:  RawOptions{Page: "abc"},
			want: &Options{Page: "abc", Route: "/users"},
		},
		{
			name:    "unknown pagination type",
			raw:     RawOptions{PaginationType: "cursor"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.raw.Decode("/users")
			if tt.wantErr {
				require.ErrorContains(t, err, "invalid pagination options")
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		labels *RoutingLabels
		want   RawOptions
	}{
		{
			name:  "default labels",
			query: "page=3&limit=25",
			want:  RawOptions{Page: "3", Limit: "25"},
		},
		{
			name:  "missing parameters stay nil",
			query: "q=john",
			want:  RawOptions{},
		},
		{
			name:   "custom labels",
			query:  "p=2&size=50&limit=5",
			labels: &RoutingLabels{PageLabel: "p", LimitLabel: "size"},
			want:   RawOptions{Page: "2", Limit: "50"},
		},
		{
			name:  "empty value is present",
			query: "page=&limit=10",
			want:  RawOptions{Page: "", Limit: "10"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			require.Equal(t, tt.want, ParseQuery(values, tt.labels))
		})
	}
}
