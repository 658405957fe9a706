package config

import (
	"testing"

	"github.com/google/uuid"
)

func TestCacheKeyFormats(t *testing.T) {
	id := uuid.MustParse("a2b52a19-7a54-4b0a-9d30-0c1a64b5e2f1")

	if got, want := CacheKey.TestPayloadKey(id), "test:a2b52a19-7a54-4b0a-9d30-0c1a64b5e2f1:payload"; got != want {
		t.Errorf("TestPayloadKey = %q, want %q", got, want)
	}
	if got, want := CacheKey.TestAnswerKey(id), "test:a2b52a19-7a54-4b0a-9d30-0c1a64b5e2f1:key"; got != want {
		t.Errorf("TestAnswerKey = %q, want %q", got, want)
	}
	if got, want := CacheKey.StudentSessionKey(42), "login:42"; got != want {
		t.Errorf("StudentSessionKey = %q, want %q", got, want)
	}
}

func TestCacheKeysDistinctPerTest(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	if CacheKey.TestPayloadKey(a) == CacheKey.TestPayloadKey(b) {
		t.Error("payload keys collide across tests")
	}
	if CacheKey.TestAnswerKey(a) == CacheKey.TestPayloadKey(a) {
		t.Error("answer key and payload key collide for one test")
	}
}
