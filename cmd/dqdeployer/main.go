// This is an ad-hoc script that provisions the AWS resources cmd/dqlambda
// needs: an S3 bucket, an IAM execution role, and the Lambda function
// itself wired to an S3 ObjectCreated notification. Each resource is
// handled get-or-create style. The Lambda is event-triggered rather than
// Function-URL-triggered, so the final wiring step attaches a bucket
// notification instead of a Function URL config.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

var assumeRolePolicy string = `{
    "Version": "2012-10-17",
	"Statement": [
        {
            "Effect": "Allow",
            "Action": "sts:AssumeRole",
			"Principal": {"Service": "lambda.amazonaws.com"}
        }
    ]
}`

var attachRoles []string = []string{
	"arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole",
}

const (
	bucketName   = "dqcheck-reports"
	roleName     = "dqcheck_execution_role"
	functionName = "dqcheck-gateway"
	schemaKeyEnv = "schemas/schema.json"
	rulesKeyEnv  = "rules/ruleset.toml"
	region       = "eu-central-1"
)

func run() error {
	if len(os.Args) != 2 {
		return errors.New("need to supply the lambda zip bundle as the first and only argument")
	}
	lambdaPkg := os.Args[1]
	zipData, err := os.ReadFile(lambdaPkg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return err
	}
	log.Printf("config loaded for region %v", cfg.Region)

	s3client := s3.NewFromConfig(cfg)
	if err := getOrCreateBucket(s3client, region); err != nil {
		return err
	}

	iamClient := iam.NewFromConfig(cfg)
	role, err := getOrCreateRole(iamClient)
	if err != nil {
		return err
	}
	log.Printf("execution role ready: %v", *role.Arn)

	lambdaClient := lambda.NewFromConfig(cfg)
	fn, err := getOrCreateFunction(lambdaClient, role, zipData)
	if err != nil {
		return err
	}
	log.Printf("function ready: %v", *fn.FunctionArn)

	if err := attachBucketNotification(s3client, lambdaClient, fn); err != nil {
		return err
	}
	log.Printf("s3://%s now triggers %s on ObjectCreated", bucketName, functionName)
	return nil
}

func getOrCreateBucket(s3client *s3.Client, region string) error {
	_, err := s3client.HeadBucket(context.TODO(), &s3.HeadBucketInput{Bucket: aws.String(bucketName)})
	if err == nil {
		log.Printf("bucket %v already exists", bucketName)
		return nil
	}
	_, err = s3client.CreateBucket(context.TODO(), &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
		CreateBucketConfiguration: &s3Types.CreateBucketConfiguration{
			LocationConstraint: s3Types.BucketLocationConstraint(region),
		},
	})
	if err != nil {
		return err
	}
	log.Printf("created bucket %v", bucketName)

	_, err = s3client.PutPublicAccessBlock(context.TODO(), &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucketName),
		PublicAccessBlockConfiguration: &s3Types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       true,
			BlockPublicPolicy:     true,
			IgnorePublicAcls:      true,
			RestrictPublicBuckets: true,
		},
	})
	return err
}

func getOrCreateRole(iamClient *iam.Client) (*iamTypes.Role, error) {
	getRole, err := iamClient.GetRole(context.TODO(), &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err == nil {
		log.Printf("role %v already exists", roleName)
		return getRole.Role, nil
	}
	var notFound *iamTypes.NoSuchEntityException
	if !errors.As(err, &notFound) {
		return nil, err
	}

	log.Printf("role does not exist, creating %v", roleName)
	created, err := iamClient.CreateRole(context.TODO(), &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: &assumeRolePolicy,
	})
	if err != nil {
		return nil, err
	}
	role := created.Role

	s3PolicyName := "dqcheck-access-s3"
	_, err = iamClient.PutRolePolicy(context.TODO(), &iam.PutRolePolicyInput{
		PolicyName: &s3PolicyName,
		RoleName:   role.RoleName,
		PolicyDocument: aws.String(fmt.Sprintf(`{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Sid": "ReadWriteS3",
					"Effect": "Allow",
					"Action": ["s3:GetObject", "s3:PutObject"],
					"Resource": "arn:aws:s3:::%v/*"
				}
			]
		}`, bucketName)),
	})
	if err != nil {
		return nil, err
	}

	for _, arn := range attachRoles {
		if _, err := iamClient.AttachRolePolicy(context.TODO(), &iam.AttachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(arn),
		}); err != nil {
			return nil, err
		}
		log.Printf("attached policy %v", arn)
	}
	return role, nil
}

func getOrCreateFunction(lambdaClient *lambda.Client, role *iamTypes.Role, zipData []byte) (*lambda.GetFunctionOutput, error) {
	existing, err := lambdaClient.GetFunction(context.TODO(), &lambda.GetFunctionInput{FunctionName: aws.String(functionName)})
	if err == nil {
		log.Printf("function exists, updating code")
		if _, err := lambdaClient.UpdateFunctionCode(context.TODO(), &lambda.UpdateFunctionCodeInput{
			FunctionName: aws.String(functionName),
			ZipFile:      zipData,
		}); err != nil {
			return nil, err
		}
		return existing, nil
	}

	var notFound *lambdaTypes.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return nil, err
	}

	log.Printf("function does not exist, creating")
	if _, err := lambdaClient.CreateFunction(context.TODO(), &lambda.CreateFunctionInput{
		FunctionName: aws.String(functionName),
		Role:         role.Arn,
		Runtime:      lambdaTypes.RuntimeGo1x,
		Handler:      aws.String("main"),
		Code:         &lambdaTypes.FunctionCode{ZipFile: zipData},
		Timeout:      aws.Int32(60),
		Environment: &lambdaTypes.Environment{
			Variables: map[string]string{
				"DQ_SCHEMA_KEY": schemaKeyEnv,
				"DQ_RULES_KEY":  rulesKeyEnv,
			},
		},
	}); err != nil {
		return nil, err
	}

	return lambdaClient.GetFunction(context.TODO(), &lambda.GetFunctionInput{FunctionName: aws.String(functionName)})
}

func attachBucketNotification(s3client *s3.Client, lambdaClient *lambda.Client, fn *lambda.GetFunctionOutput) error {
	_, err := lambdaClient.AddPermission(context.TODO(), &lambda.AddPermissionInput{
		FunctionName: aws.String(functionName),
		Action:       aws.String("lambda:InvokeFunction"),
		Principal:    aws.String("s3.amazonaws.com"),
		StatementId:  aws.String("AllowS3Invoke"),
		SourceArn:    aws.String(fmt.Sprintf("arn:aws:s3:::%s", bucketName)),
	})
	if err != nil {
		var exists *lambdaTypes.ResourceConflictException
		if !errors.As(err, &exists) {
			return err
		}
	}

	_, err = s3client.PutBucketNotificationConfiguration(context.TODO(), &s3.PutBucketNotificationConfigurationInput{
		Bucket: aws.String(bucketName),
		NotificationConfiguration: &s3Types.NotificationConfiguration{
			LambdaFunctionConfigurations: []s3Types.LambdaFunctionConfiguration{
				{
					LambdaFunctionArn: fn.Configuration.FunctionArn,
					Events:            []s3Types.Event{s3Types.EventS3ObjectCreated},
				},
			},
		},
	})
	return err
}
