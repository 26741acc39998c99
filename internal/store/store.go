package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("document not found")

// ErrExists is returned by Insert when the document id is already taken.
var ErrExists = errors.New("document already exists")

// Store is the gateway's own durable state: admin sessions and payout
// locks. Person and content records live in the content API, never here.
type Store struct {
	cluster *gocb.Cluster
	bucket  *gocb.Bucket
}

// Connect opens the cluster and waits for the bucket to become ready.
func Connect(url, username, password, bucketName string) (*Store, error) {
	connectionString := url
	if len(url) > 7 && url[:7] == "http://" {
		connectionString = "couchbase://" + url[7:]
	}

	cluster, err := gocb.Connect(connectionString, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: username,
			Password: password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}

	if err := cluster.WaitUntilReady(30*time.Second, nil); err != nil {
		return nil, fmt.Errorf("failed to wait for cluster: %w", err)
	}

	bucket := cluster.Bucket(bucketName)
	if err := bucket.WaitUntilReady(10*time.Second, nil); err != nil {
		return nil, fmt.Errorf("bucket %q is not accessible: %w", bucketName, err)
	}

	return &Store{cluster: cluster, bucket: bucket}, nil
}

// Close closes the cluster connection.
func (s *Store) Close() error {
	return s.cluster.Close(nil)
}

// Upsert stores a document. A zero ttl means the document never expires.
func (s *Store) Upsert(ctx context.Context, docID string, doc interface{}, ttl time.Duration) error {
	col := s.bucket.DefaultCollection()
	_, err := col.Upsert(docID, doc, &gocb.UpsertOptions{
		Expiry:  ttl,
		Context: ctx,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", docID, err)
	}
	return nil
}

// Insert stores a document only if the id is free. Existing ids return
// ErrExists, which is what the payout lock relies on.
func (s *Store) Insert(ctx context.Context, docID string, doc interface{}, ttl time.Duration) error {
	col := s.bucket.DefaultCollection()
	_, err := col.Insert(docID, doc, &gocb.InsertOptions{
		Expiry:  ttl,
		Context: ctx,
	})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentExists) {
			return ErrExists
		}
		return fmt.Errorf("failed to insert document %s: %w", docID, err)
	}
	return nil
}

// Get retrieves a document into result. Missing ids return ErrNotFound.
func (s *Store) Get(ctx context.Context, docID string, result interface{}) error {
	col := s.bucket.DefaultCollection()
	resultDoc, err := col.Get(docID, &gocb.GetOptions{Context: ctx})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get document %s: %w", docID, err)
	}
	if err := resultDoc.Content(result); err != nil {
		return fmt.Errorf("failed to parse document content: %w", err)
	}
	return nil
}

// Remove deletes a document. Missing ids return ErrNotFound.
func (s *Store) Remove(ctx context.Context, docID string) error {
	col := s.bucket.DefaultCollection()
	_, err := col.Remove(docID, &gocb.RemoveOptions{Context: ctx})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete document %s: %w", docID, err)
	}
	return nil
}
