package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionClassifier is the alternative classifier backend: AWS
// Rekognition DetectLabels, top label wins. Selected with
// CLASSIFIER_BACKEND=rekognition.
type RekognitionClassifier struct {
	client *rekognition.Client
}

func NewRekognitionClassifier(ctx context.Context, region string) (*RekognitionClassifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionClassifier{client: rekognition.NewFromConfig(cfg)}, nil
}

func (r *RekognitionClassifier) Classify(ctx context.Context, img ClassifyPayload) (string, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img.Data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return "", err
	}

	for _, l := range out.Labels {
		if l.Name != nil && *l.Name != "" {
			return *l.Name, nil
		}
	}
	return "", nil // nothing confident enough: no result
}
