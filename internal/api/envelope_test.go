package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMatchBody(t *testing.T) {
	m := MatchBody[testPayload]([]byte(`{"success":true,"data":{"name":"squat","count":3}}`))
	assert.Equal(t, EnvelopeMatch, m.Kind)
	assert.True(t, m.HasPayload)
	assert.Equal(t, testPayload{Name: "squat", Count: 3}, m.Value)

	m = MatchBody[testPayload]([]byte(`{"success":true,"data":null}`))
	assert.Equal(t, EnvelopeMatch, m.Kind)
	assert.False(t, m.HasPayload)
	assert.True(t, m.Success)

	m = MatchBody[testPayload]([]byte(`{"success":false,"message":"nope"}`))
	assert.Equal(t, EnvelopeMatch, m.Kind)
	assert.False(t, m.Success)
	assert.Equal(t, "nope", m.Message)

	m = MatchBody[testPayload]([]byte(`{"name":"bench","count":5}`))
	assert.Equal(t, RawMatch, m.Kind)
	assert.Equal(t, testPayload{Name: "bench", Count: 5}, m.Value)

	// data that does not fit T is not re-read as a raw T
	m = MatchBody[testPayload]([]byte(`{"success":true,"data":"oops"}`))
	assert.Equal(t, NoMatch, m.Kind)

	m = MatchBody[testPayload]([]byte(`not json`))
	assert.Equal(t, NoMatch, m.Kind)
	assert.Equal(t, "none", m.Kind.String())
}

func TestDecodeResponse_EnvelopeWithData(t *testing.T) {
	v, err := DecodeResponse[testPayload](http.StatusOK, []byte(`{"success":true,"data":{"name":"x","count":1},"message":null}`))
	require.NoError(t, err)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, 1, v.Count)
}

func TestDecodeResponse_EnvelopeWithoutData(t *testing.T) {
	_, err := DecodeResponse[Void](http.StatusCreated, []byte(`{"success":true}`))
	require.NoError(t, err)

	v, err := DecodeResponse[*testPayload](http.StatusOK, []byte(`{"success":true,"data":null}`))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecodeResponse_EnvelopeFailure(t *testing.T) {
	_, err := DecodeResponse[testPayload](http.StatusOK, []byte(`{"success":false,"message":"m"}`))
	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, "m", apiErr.Message)

	_, err = DecodeResponse[testPayload](http.StatusOK, []byte(`{"success":false}`))
	require.Error(t, err)
	assert.Equal(t, MessageUnknownError, MessageOf(err, ""))
}

func TestDecodeResponse_Raw(t *testing.T) {
	v, err := DecodeResponse[map[string]string](http.StatusOK, []byte(`{"status":"ok"}`))
	require.NoError(t, err)
	assert.Equal(t, "ok", v["status"])

	list, err := DecodeResponse[[]testPayload](http.StatusOK, []byte(`[{"name":"a"},{"name":"b"}]`))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	last, err := DecodeResponse[*testPayload](http.StatusOK, []byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestDecodeResponse_DecodingFailed(t *testing.T) {
	for _, body := range []string{``, `<html></html>`, `{"success":true,"data":[1,2]}`, `"text"`} {
		_, err := DecodeResponse[testPayload](http.StatusOK, []byte(body))
		require.Error(t, err, body)
		apiErr, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindDecoding, apiErr.Kind, body)
		assert.Equal(t, http.StatusOK, apiErr.Status)
		assert.Equal(t, MessageDecodingFailed, apiErr.Message)
	}
}

func TestDecodeResponse_RawMismatchIsDecodingError(t *testing.T) {
	for _, body := range []string{`null`, ` null `, `{}`, `{"error":"boom"}`} {
		v, err := DecodeResponse[testPayload](http.StatusOK, []byte(body))
		require.Error(t, err, body)
		assert.True(t, IsKind(err, KindDecoding), body)
		assert.Equal(t, MessageDecodingFailed, MessageOf(err, ""))
		assert.Equal(t, testPayload{}, v)

		ptr, err := DecodeResponse[*testPayload](http.StatusOK, []byte(body))
		if body == `null` || body == ` null ` {
			require.NoError(t, err)
			assert.Nil(t, ptr)
			continue
		}
		assert.True(t, IsKind(err, KindDecoding), body)
	}

	// a single known field is enough, matching is case-insensitive
	v, err := DecodeResponse[testPayload](http.StatusOK, []byte(`{"NAME":"row","extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, "row", v.Name)
}

type embeddedPayload struct {
	testPayload
	Note string `json:"note"`
}

func TestDecodeResponse_RawEmbeddedFields(t *testing.T) {
	v, err := DecodeResponse[embeddedPayload](http.StatusOK, []byte(`{"count":7}`))
	require.NoError(t, err)
	assert.Equal(t, 7, v.Count)

	_, err = DecodeResponse[embeddedPayload](http.StatusOK, []byte(`{"testPayload":{}}`))
	assert.True(t, IsKind(err, KindDecoding))
}

func TestDecodeResponse_NonSuccessStatus(t *testing.T) {
	_, err := DecodeResponse[testPayload](http.StatusUnauthorized, []byte(`{"success":false,"message":"Invalid credentials"}`))
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	// a message is enough, success may be missing
	_, err = DecodeResponse[testPayload](http.StatusBadRequest, []byte(`{"message":"bad input"}`))
	assert.Equal(t, "bad input", MessageOf(err, ""))

	for _, body := range []string{``, `{"success":false,"message":""}`, `gateway timeout`} {
		_, err = DecodeResponse[testPayload](http.StatusBadGateway, []byte(body))
		apiErr, ok = AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindHTTP, apiErr.Kind)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "HTTP 502", apiErr.Message)
	}

	// a 3xx that reached us is not a success either
	_, err = DecodeResponse[testPayload](http.StatusNotModified, []byte(`{"success":true,"data":{"name":"x"}}`))
	assert.True(t, IsKind(err, KindHTTP))
}

func TestDecodeResponse_VoidIgnoresPayload(t *testing.T) {
	_, err := DecodeResponse[Void](http.StatusOK, []byte(`{"success":true,"data":{"_id":"m1"}}`))
	require.NoError(t, err)
	_, err = DecodeResponse[Void](http.StatusOK, []byte(`{"success":true,"data":"deleted"}`))
	require.NoError(t, err)
	_, err = DecodeResponse[Void](http.StatusNoContent, []byte(`{}`))
	require.NoError(t, err)
	_, err = DecodeResponse[Void](http.StatusOK, []byte(`<html>`))
	assert.True(t, IsKind(err, KindDecoding))
}
