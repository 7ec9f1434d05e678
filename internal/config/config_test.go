package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Default(t *testing.T) {
	assert := assert.New(t)

	opts := Default()
	assert.Equal(2, opts.Step)
	assert.False(opts.Cache.Enabled)
}

func Test_Load_overrides_fields(t *testing.T) {
	assert := assert.New(t)
	require := assert.New(t)

	data := []byte(`
step = 4

[cache]
enabled = true
dir = "/tmp/smie-cache"
`)

	opts, err := Load(data)
	require.NoError(err)

	assert.Equal(4, opts.Step)
	assert.True(opts.Cache.Enabled)
	assert.Equal("/tmp/smie-cache", opts.Cache.Dir)
}

func Test_Load_partial_file_keeps_defaults(t *testing.T) {
	assert := assert.New(t)

	data := []byte(`
[cache]
enabled = true
`)

	opts, err := Load(data)
	assert.NoError(err)
	assert.Equal(2, opts.Step, "unset fields should keep the Default() value")
	assert.True(opts.Cache.Enabled)
}

func Test_Load_malformed_toml(t *testing.T) {
	assert := assert.New(t)

	_, err := Load([]byte(`not = valid = toml`))
	assert.Error(err)
}
