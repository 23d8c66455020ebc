package event

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestUserCreatedPublisher(t *testing.T) {
	assert := assert.New(t)

	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("POST", r.Method)
		body, err := ioutil.ReadAll(r.Body)
		if !assert.NoError(err) {
			return
		}
		assert.NoError(json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	publish := RestUserCreatedPublisher(server.URL)
	if !assert.NoError(publish(7)) {
		return
	}

	assert.Equal("UserCreated", received["type"])
	assert.Equal(float64(7), received["userId"])
	assert.NotEmpty(received["eventId"])
}

func TestRestUserCreatedPublisherRejectedDelivery(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publish := RestUserCreatedPublisher(server.URL)
	assert.Error(publish(7))
}
