package requestdata

import (
  "context"

  "github.com/google/uuid"
)

type contextKey string

const requestDataKey contextKey = "request_data"

// RequestData carries the authenticated caller through the request context.
type RequestData struct {
  TokenString  string
  RefreshToken string
  UserID       uuid.UUID
  Role         string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  rd, ok := ctx.Value(requestDataKey).(*RequestData)
  if !ok {
    return nil
  }
  return rd
}
