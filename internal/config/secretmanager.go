package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/crc32"

	"google.golang.org/api/option"
	"google.golang.org/api/secretmanager/v1"
)

// SecretAccessor reads the payload of one secret version.
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, name string) ([]byte, error)
}

// SecretManager reads secrets through the Secret Manager REST API.
type SecretManager struct {
	service *secretmanager.Service
}

// NewSecretManager creates a client using Application Default Credentials
// unless opts say otherwise.
func NewSecretManager(ctx context.Context, opts ...option.ClientOption) (*SecretManager, error) {
	service, err := secretmanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error while creating secret manager service: %w", err)
	}
	return &SecretManager{service: service}, nil
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// AccessSecretVersion returns the decoded payload of the secret version name,
// e.g. "projects/p/secrets/s/versions/latest".
func (s *SecretManager) AccessSecretVersion(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.service.Projects.Secrets.Versions.Access(name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error while accessing secret version %s: %w", name, err)
	}
	if resp.Payload == nil {
		return nil, fmt.Errorf("secret version %s has no payload", name)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Payload.Data)
	if err != nil {
		return nil, fmt.Errorf("error while decoding payload of secret version %s: %w", name, err)
	}

	if resp.Payload.DataCrc32c != 0 {
		if sum := int64(crc32.Checksum(data, castagnoli)); sum != resp.Payload.DataCrc32c {
			return nil, fmt.Errorf("checksum mismatch for secret version %s", name)
		}
	}

	return data, nil
}
