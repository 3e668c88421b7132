package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	b := NoopBuildHooks{}
	b.OnBuildStart(ctx, "S5", 5)
	b.OnBuildComplete(ctx, "S5", 4, time.Second, nil)
	b.OnMembership(ctx, true, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "summary")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "summary", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/groups/{id}")
	h.OnResponse(ctx, "GET", "/groups/{id}", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Build() should return NoopBuildHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customBuild := &testBuildHooks{}
	SetBuildHooks(customBuild)
	if Build() != customBuild {
		t.Error("SetBuildHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Reset() should restore NoopBuildHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testBuildHooks{}
	SetBuildHooks(custom)
	SetBuildHooks(nil)

	if Build() != custom {
		t.Error("SetBuildHooks(nil) should be ignored")
	}
}

type testBuildHooks struct{ NoopBuildHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
