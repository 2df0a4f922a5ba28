package coerce

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInt64(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"float64", float64(42), 42},
		{"float64 truncates", 7.9, 7},
		{"int", 5, 5},
		{"int64", int64(9), 9},
		{"json.Number", json.Number("17"), 17},
		{"numeric string", "123", 123},
		{"string with spaces", " 8 ", 8},
		{"garbage string", "abc", 0},
		{"bool true", true, 1},
		{"bool false", false, 0},
		{"nil", nil, 0},
		{"wrong type", []string{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Int64(tt.in))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "hello", String("hello"))
	assert.Equal(t, "3", String(float64(3)))
	assert.Equal(t, "3.5", String(3.5))
	assert.Equal(t, "true", String(true))
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "", String(map[string]interface{}{}))
}

func TestBool(t *testing.T) {
	// Backend stores flags as 0/1
	assert.True(t, Bool(float64(1)))
	assert.False(t, Bool(float64(0)))
	assert.True(t, Bool(true))
	assert.False(t, Bool(false))
	assert.True(t, Bool("1"))
	assert.True(t, Bool("true"))
	assert.False(t, Bool("0"))
	assert.False(t, Bool(""))
	assert.False(t, Bool(nil))
}

func TestTime(t *testing.T) {
	got := Time("2024-03-01T10:30:00Z")
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), got)

	got = Time("2024-03-01 10:30:00")
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())

	assert.True(t, Time("not a date").IsZero())
	assert.True(t, Time(nil).IsZero())
	assert.True(t, Time("").IsZero())
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, Tags("go,web"))
	assert.Equal(t, []string{"go", "web"}, Tags(" go , web "))
	assert.Equal(t, []string{"go"}, Tags("go,,go,"))
	assert.Nil(t, Tags(""))
	assert.Nil(t, Tags(nil))
}
