package repository

import (
	"context"
	"errors"
	"time"

	"eventgear/internal/domain/entities"
	"eventgear/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsCheckoutIndex    = "checkout_request_id-index"
	paymentsBookingIDIndex   = "booking_id-index"
)

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	BookingID         string `dynamodbav:"booking_id"`
	CheckoutRequestID string `dynamodbav:"checkout_request_id"`
	MerchantRequestID string `dynamodbav:"merchant_request_id"`
	Amount            int64  `dynamodbav:"amount"`
	Phone             string `dynamodbav:"phone"`
	Method            string `dynamodbav:"payment_method"`
	Status            string `dynamodbav:"status"`
	ReceiptNumber     string `dynamodbav:"receipt_number,omitempty"`
	TransactionDate   string `dynamodbav:"transaction_date,omitempty"`
	FailureReason     string `dynamodbav:"failure_reason,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: checkout_request_id-index (PK: checkout_request_id)
//   - GSI: booking_id-index (PK: booking_id)
//
// The checkout_request_id GSI is the join key the callback receiver uses to
// correlate the gateway's asynchronous outcome with the push that caused it.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsCheckoutIndex),
		KeyConditionExpression: aws.String("checkout_request_id = :crid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":crid": &types.AttributeValueMemberS{Value: checkoutRequestID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByBookingID(ctx context.Context, bookingID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsBookingIDIndex),
		KeyConditionExpression: aws.String("booking_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: bookingID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

// MarkCompleted moves a payment to completed. The condition allows the write
// only from pending or an identical completed state, so redelivered success
// callbacks overwrite with the same values and a previously failed payment is
// never resurrected; that conflict surfaces as a zero-value Payment.
func (r *PaymentDynamoRepository) MarkCompleted(ctx context.Context, id, receiptNumber, transactionDate string) (entities.Payment, error) {
	return r.update(ctx, id, entities.PaymentStatusCompleted, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #receipt_number = :receipt_number, #transaction_date = :transaction_date, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":           &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)},
			":receipt_number":   &types.AttributeValueMemberS{Value: receiptNumber},
			":transaction_date": &types.AttributeValueMemberS{Value: transactionDate},
			":updated_at":       &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":           "status",
			"#receipt_number":   "receipt_number",
			"#transaction_date": "transaction_date",
			"#updated_at":       "updated_at",
		}
		return expr, vals, names
	})
}

// MarkFailed moves a payment to failed under the same one-way guard.
func (r *PaymentDynamoRepository) MarkFailed(ctx context.Context, id, failureReason string) (entities.Payment, error) {
	return r.update(ctx, id, entities.PaymentStatusFailed, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #failure_reason = :failure_reason, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusFailed)},
			":failure_reason": &types.AttributeValueMemberS{Value: failureReason},
			":updated_at":     &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":         "status",
			"#failure_reason": "failure_reason",
			"#updated_at":     "updated_at",
		}
		return expr, vals, names
	})
}

func (r *PaymentDynamoRepository) update(
	ctx context.Context,
	id string,
	target entities.PaymentStatus,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	values[":pending"] = &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)}
	values[":target"] = &types.AttributeValueMemberS{Value: string(target)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND (#status = :pending OR #status = :target)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		BookingID:         p.BookingID,
		CheckoutRequestID: p.CheckoutRequestID,
		MerchantRequestID: p.MerchantRequestID,
		Amount:            p.Amount,
		Phone:             p.Phone,
		Method:            p.Method,
		Status:            string(p.Status),
		ReceiptNumber:     p.ReceiptNumber,
		TransactionDate:   p.TransactionDate,
		FailureReason:     p.FailureReason,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Payment{
		ID:                it.ID,
		BookingID:         it.BookingID,
		CheckoutRequestID: it.CheckoutRequestID,
		MerchantRequestID: it.MerchantRequestID,
		Amount:            it.Amount,
		Phone:             it.Phone,
		Method:            it.Method,
		Status:            entities.PaymentStatus(it.Status),
		ReceiptNumber:     it.ReceiptNumber,
		TransactionDate:   it.TransactionDate,
		FailureReason:     it.FailureReason,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}
