package ordersv1

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecRegistered(t *testing.T) {
	codec := encoding.GetCodecV2(CodecName)
	require.NotNil(t, codec)
	require.Equal(t, CodecName, codec.Name())
}

func TestJSONCodecRoundTripKeepsPriceString(t *testing.T) {
	codec := jsonCodec{}
	in := &UpdateOrderRequest{Order: &Order{
		ID: 3,
		OrderDetails: []*OrderDetail{
			{ID: 1, ProductID: "the_odyssey", Price: "99.99", Quantity: 2},
		},
	}}

	raw, err := codec.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"order":{"id":3,"order_details":[{"id":1,"product_id":"the_odyssey","price":"99.99","quantity":2}]}}`,
		string(raw),
	)

	out := &UpdateOrderRequest{}
	require.NoError(t, codec.Unmarshal(raw, out))
	require.Equal(t, in, out)
}

func TestGetOrderByProductIDResponse_OmitsEmptyDetail(t *testing.T) {
	raw, err := jsonCodec{}.Marshal(&GetOrderByProductIDResponse{})
	require.NoError(t, err)
	require.JSONEq(t, `{"found":false}`, string(raw))
}
