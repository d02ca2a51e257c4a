package objectstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/philly/spacetraveling/internal/adapters/objectstore"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/platform/datefmt"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/platform/richtext"
	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, params)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, params)
	return &s3.DeleteObjectOutput{}, nil
}

func newExporter(t *testing.T, client objectstore.ObjectAPI, prefix string) *objectstore.Exporter {
	t.Helper()
	dates, err := datefmt.New("pt-BR", "")
	require.NoError(t, err)
	return objectstore.NewExporter(client, "blog-pages", prefix, api.NewPresenter(dates, richtext.NewRenderer()), logger.Nop{})
}

func TestExporter_Key(t *testing.T) {
	assert.Equal(t, "posts/hello.json", newExporter(t, &fakeObjectAPI{}, "").Key("hello"))
	assert.Equal(t, "site/v1/posts/hello.json", newExporter(t, &fakeObjectAPI{}, "site/v1/").Key("hello"))
}

func TestExporter_Export(t *testing.T) {
	client := &fakeObjectAPI{}
	exporter := newExporter(t, client, "static")
	snap := domain.Snapshot{
		Slug:        "hello",
		Page:        domain.NewPostPage(domain.PostView{Post: domain.Post{UID: "hello", Data: domain.PostData{Title: "Hello"}}}, false),
		GeneratedAt: time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, exporter.Export(context.Background(), snap))

	require.Len(t, client.puts, 1)
	put := client.puts[0]
	assert.Equal(t, "blog-pages", aws.ToString(put.Bucket))
	assert.Equal(t, "static/posts/hello.json", aws.ToString(put.Key))
	assert.Equal(t, "application/json", aws.ToString(put.ContentType))

	var page api.PostPage
	require.NoError(t, json.Unmarshal(client.bodies[0], &page))
	assert.Equal(t, "hello", page.Post.UID)
	assert.Equal(t, "Hello", page.Post.Data.Title)
	require.NotNil(t, page.GeneratedAt)
	assert.True(t, snap.GeneratedAt.Equal(*page.GeneratedAt))
}

func TestExporter_Remove(t *testing.T) {
	client := &fakeObjectAPI{}
	exporter := newExporter(t, client, "")

	require.NoError(t, exporter.Remove(context.Background(), "gone"))

	require.Len(t, client.deletes, 1)
	assert.Equal(t, "blog-pages", aws.ToString(client.deletes[0].Bucket))
	assert.Equal(t, "posts/gone.json", aws.ToString(client.deletes[0].Key))
}

func TestExporter_Errors(t *testing.T) {
	client := &fakeObjectAPI{err: errors.New("access denied")}
	exporter := newExporter(t, client, "")

	err := exporter.Export(context.Background(), domain.Snapshot{Slug: "hello"})
	assert.ErrorContains(t, err, "upload to s3: access denied")

	err = exporter.Remove(context.Background(), "hello")
	assert.ErrorContains(t, err, "delete from s3: access denied")
}
