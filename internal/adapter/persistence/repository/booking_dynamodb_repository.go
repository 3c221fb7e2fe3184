package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultBookingsTableName = "bookings"

type bookingItemLine struct {
	Name      string `dynamodbav:"name"`
	Quantity  int    `dynamodbav:"quantity"`
	UnitPrice string `dynamodbav:"unit_price"`
}

type bookingItem struct {
	ID              string            `dynamodbav:"id"`
	CustomerName    string            `dynamodbav:"customer_name"`
	CustomerEmail   string            `dynamodbav:"customer_email"`
	CustomerPhone   string            `dynamodbav:"customer_phone"`
	CustomerAddress string            `dynamodbav:"customer_address,omitempty"`
	StartDate       string            `dynamodbav:"start_date"`
	EndDate         string            `dynamodbav:"end_date"`
	Items           []bookingItemLine `dynamodbav:"items"`
	TotalAmount     string            `dynamodbav:"total_amount"`
	Status          string            `dynamodbav:"status"`
	CreatedAt       string            `dynamodbav:"created_at"`
	UpdatedAt       string            `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type BookingDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb *dynamodb.Client) *BookingDynamoRepository {
	return &BookingDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BOOKINGS_TABLE", defaultBookingsTableName),
	}
}

func (r *BookingDynamoRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	it := toBookingItem(b)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Booking{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}

	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

// UpdateStatus is a conditional single-row write. The guard admits the listed
// source statuses plus the target itself, so re-applying a transition that
// already happened is a harmless overwrite. A failed guard returns a
// zero-value Booking with nil error.
func (r *BookingDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus, allowedFrom ...entities.BookingStatus) (entities.Booking, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	cond := "attribute_exists(#id) AND (#status = :target"
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
		":target":     &types.AttributeValueMemberS{Value: string(status)},
	}
	for i, from := range allowedFrom {
		ph := fmt.Sprintf(":from%d", i)
		cond += " OR #status = " + ph
		values[ph] = &types.AttributeValueMemberS{Value: string(from)}
	}
	cond += ")"

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(cond),
		UpdateExpression:          aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Booking{}, nil
	}
	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func toBookingItem(b entities.Booking) bookingItem {
	lines := make([]bookingItemLine, 0, len(b.Items))
	for _, li := range b.Items {
		lines = append(lines, bookingItemLine{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: floatToString(li.UnitPrice),
		})
	}
	return bookingItem{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Items:           lines,
		TotalAmount:     floatToString(b.TotalAmount),
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	total, _ := strconv.ParseFloat(it.TotalAmount, 64)

	lines := make([]entities.BookingItem, 0, len(it.Items))
	for _, li := range it.Items {
		price, _ := strconv.ParseFloat(li.UnitPrice, 64)
		lines = append(lines, entities.BookingItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: price,
		})
	}
	return entities.Booking{
		ID:              it.ID,
		CustomerName:    it.CustomerName,
		CustomerEmail:   it.CustomerEmail,
		CustomerPhone:   it.CustomerPhone,
		CustomerAddress: it.CustomerAddress,
		StartDate:       it.StartDate,
		EndDate:         it.EndDate,
		Items:           lines,
		TotalAmount:     total,
		Status:          entities.BookingStatus(it.Status),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
