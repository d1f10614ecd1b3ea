// export/s3.go
//
// Copyright 2025 Raywall Malheiros de Souza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package export publica conjuntos de resultados em destinos externos.
// Hoje o destino suportado é o S3, com o conjunto renderizado em CSV.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/raywall/dynamo-result-toolkit/resultset"
)

// S3Client interface para Mock
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter grava conjuntos de resultados como objetos CSV em um bucket.
type S3Exporter struct {
	client S3Client
	bucket string
	logger zerolog.Logger
}

// S3ExporterOption configura o exportador na construção.
type S3ExporterOption func(*S3Exporter)

// WithLogger liga o logger estruturado do exportador.
func WithLogger(logger zerolog.Logger) S3ExporterOption {
	return func(e *S3Exporter) {
		e.logger = logger
	}
}

// NewS3Exporter cria um exportador sobre um cliente já configurado.
func NewS3Exporter(client S3Client, bucket string, opts ...S3ExporterOption) *S3Exporter {
	e := &S3Exporter{
		client: client,
		bucket: bucket,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefaultS3Exporter cria um exportador com a cadeia padrão de credenciais
// e região da AWS.
func NewDefaultS3Exporter(ctx context.Context, bucket string, opts ...S3ExporterOption) (*S3Exporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: load aws config: %w", err)
	}
	return NewS3Exporter(s3.NewFromConfig(cfg), bucket, opts...), nil
}

// Export renderiza o conjunto em CSV e grava o objeto na chave indicada.
// Um erro pendente do conjunto interrompe a exportação antes de tocar o S3.
func (e *S3Exporter) Export(ctx context.Context, rs *resultset.ResultSet, key string, opts ...resultset.CSVOption) error {
	if err := rs.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := rs.WriteCSV(&body, opts...); err != nil {
		return fmt.Errorf("export: render csv: %w", err)
	}

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("export: put object s3://%s/%s: %w", e.bucket, key, err)
	}

	e.logger.Debug().
		Str("bucket", e.bucket).
		Str("key", key).
		Int("bytes", body.Len()).
		Msg("conjunto exportado em CSV")
	return nil
}
