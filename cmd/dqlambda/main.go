// Package main is the S3-triggered Lambda gateway for dqcheck: it loads
// the uploaded CSV object plus a schema and rule-set from the same
// bucket, runs the validator, and writes a compressed report back next
// to the input object. It is shaped as load-config/dispatch/write-back,
// with no HTTP-request shimming, since a one-shot validation job has no
// request/response cycle.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"

	"github.com/okonkwo-labs/dqcheck/src/constraint"
	"github.com/okonkwo-labs/dqcheck/src/loadsource"
	"github.com/okonkwo-labs/dqcheck/src/ruleconfig"
	"github.com/okonkwo-labs/dqcheck/src/schema"
	"github.com/okonkwo-labs/dqcheck/src/validate"
)

const reportSuffix = ".report.json.sz"

// HandleRequest is the entry point Lambda invokes for an S3 ObjectCreated
// notification. Records are validated one after another, each with its own
// report; the first record that fails stops processing and its error is
// returned.
func HandleRequest(ctx context.Context, event events.S3Event) error {
	schemaKey := os.Getenv("DQ_SCHEMA_KEY")
	rulesKey := os.Getenv("DQ_RULES_KEY")
	if schemaKey == "" || rulesKey == "" {
		return fmt.Errorf("DQ_SCHEMA_KEY and DQ_RULES_KEY must both be set")
	}

	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key
		if err := processObject(ctx, bucket, key, schemaKey, rulesKey); err != nil {
			log.Printf("failed to process s3://%s/%s: %v", bucket, key, err)
			return err
		}
		log.Printf("validated s3://%s/%s", bucket, key)
	}
	return nil
}

func processObject(ctx context.Context, bucket, dataKey, schemaKey, rulesKey string) error {
	sch, err := fetchSchema(ctx, bucket, schemaKey)
	if err != nil {
		return fmt.Errorf("failed to fetch schema: %w", err)
	}

	rules, err := fetchRules(ctx, bucket, rulesKey)
	if err != nil {
		return fmt.Errorf("failed to fetch rule configuration: %w", err)
	}

	data, err := loadsource.Open(ctx, s3URI(bucket, dataKey))
	if err != nil {
		return fmt.Errorf("failed to fetch data object: %w", err)
	}
	defer data.Close()

	ds, err := schema.LoadCSVFrom(data, sch)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	results := validate.Validate(ds, rules)
	return writeReport(ctx, bucket, dataKey, results)
}

func fetchSchema(ctx context.Context, bucket, key string) (schema.Schema, error) {
	r, err := loadsource.Open(ctx, s3URI(bucket, key))
	if err != nil {
		return schema.Schema{}, err
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return schema.Schema{}, err
	}
	var s schema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return schema.Schema{}, err
	}
	return s, nil
}

func fetchRules(ctx context.Context, bucket, key string) ([]constraint.Rule, error) {
	r, err := loadsource.Open(ctx, s3URI(bucket, key))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ruleconfig.Decode(raw)
}

func writeReport(ctx context.Context, bucket, dataKey string, results []validate.Result) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	compressed := snappy.Encode(nil, payload)

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("could not load AWS configuration: %w", err)
	}
	svc := s3.NewFromConfig(cfg)
	reportKey := dataKey + reportSuffix
	_, err = svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(reportKey),
		Body:   bytes.NewReader(compressed),
	})
	return err
}

func s3URI(bucket, key string) string {
	return "s3://" + strings.TrimPrefix(bucket, "/") + "/" + strings.TrimPrefix(key, "/")
}

func main() {
	lambda.Start(HandleRequest)
}
