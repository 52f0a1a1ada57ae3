package apiconfig

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/rusq/gptok/internal/network"
)

const sampleLimitsToml = `workers = 4
retries = 3

[ask]
burst = 1

[api]
burst = 3
boost = 60
`

func Test_readLimits(t *testing.T) {
	type args struct {
		r io.Reader
	}
	tests := []struct {
		name    string
		args    args
		want    network.Limits
		wantErr bool
	}{
		{
			"sample config (ok)",
			args{strings.NewReader(sampleLimitsToml)},
			network.DefLimits,
			false,
		},
		{
			"workers invalid",
			args{strings.NewReader("workers = -1")},
			network.Limits{},
			true,
		},
		{
			"one parameter override",
			args{strings.NewReader("workers = 16")},
			network.Limits{
				Workers: 16,
				Retries: 3,
				Ask:     network.TierLimit{Burst: 1},
				API:     network.TierLimit{Burst: 3, Boost: 60},
			},
			false,
		},
		{
			"unknown keys",
			args{strings.NewReader("wrokers = 4")},
			network.Limits{},
			true,
		},
		{
			"not a toml file",
			args{strings.NewReader("{}")},
			network.Limits{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readLimits(tt.args.r)
			if (err != nil) != tt.wantErr {
				t.Errorf("readLimits() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("readLimits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_writeLimits(t *testing.T) {
	var buf strings.Builder
	if err := writeLimits(&buf, network.DefLimits); err != nil {
		t.Fatal(err)
	}
	got, err := readLimits(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("written config does not read back: %s", err)
	}
	if !reflect.DeepEqual(got, network.DefLimits) {
		t.Errorf("readLimits() = %v, want %v", got, network.DefLimits)
	}
}
