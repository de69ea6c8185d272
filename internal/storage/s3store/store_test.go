package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/quantum-trade/internal/storage"
	"github.com/hongminglow/quantum-trade/internal/storage/storagetest"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string]string
	failPut error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string]string)}
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.KeyValueStore {
		return New(newFakeObjects(), "quantum", "profiles")
	})
}

func TestStore_ObjectKeyUsesPrefix(t *testing.T) {
	fake := newFakeObjects()
	s := New(fake, "quantum", "/profiles/")
	require.NoError(t, s.Set(context.Background(), "p1:quantum_users", "[]"))

	_, ok := fake.objects["quantum/profiles/p1:quantum_users"]
	require.True(t, ok)
}

func TestStore_SetWrapsBackendError(t *testing.T) {
	fake := newFakeObjects()
	boom := errors.New("quota exceeded")
	fake.failPut = boom
	s := New(fake, "quantum", "")

	err := s.Set(context.Background(), "k", "v")
	require.ErrorIs(t, err, boom)
}
