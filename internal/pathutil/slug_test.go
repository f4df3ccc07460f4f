package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueID(t *testing.T) {
	tests := []struct {
		fullURL string
		want    string
	}{
		{fullURL: "/orders", want: "orders"},
		{fullURL: "/orders/{orderId}", want: "orders_orderId"},
		{fullURL: "/orders/{orderId}/items", want: "orders_orderId_items"},
		{fullURL: "/a--b//c", want: "a_b_c"},
		{fullURL: "/snake_case/__x__", want: "snake_case_x"},
		{fullURL: "/v1.2/{id}.json", want: "v1_2_id_json"},
		{fullURL: "", want: ""},
		{fullURL: "///", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.fullURL, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueID(tt.fullURL))
		})
	}
}

func TestUniqueID_Deterministic(t *testing.T) {
	assert.Equal(t, UniqueID("/orders/{id}"), UniqueID("/orders/{id}"))
	assert.NotEqual(t, UniqueID("/orders/{id}"), UniqueID("/orders/{id}/items"))
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "createOrder", want: "createOrder"},
		{in: "orders/{orderId}", want: "orders_orderId"},
		{in: "v1.2/get", want: "v1.2_get"},
		{in: "/leading/", want: "leading"},
		{in: "a__b", want: "a_b"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Anchor(tt.in))
		})
	}
}
