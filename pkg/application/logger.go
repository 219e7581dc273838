package application

import (
	"context"
	"encoding/json"
)

// Fields são os campos estruturados anexados a uma entrada de log.
type Fields = map[string]interface{}

type AppLogger interface {
	Info(ctx context.Context, msg string, fields Fields)
	Debug(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, msg string, fields Fields)
	Trace(ctx context.Context, msg string, fields Fields)
}

func LogError(ctx context.Context, logger AppLogger, message string, err error, fields Fields) {
	logData := mergeFields(fields)
	if err != nil {
		logData["error"] = err.Error()
	}
	logger.Error(ctx, message, logData)
}

func LogInfo(ctx context.Context, logger AppLogger, message string, fields Fields) {
	logger.Info(ctx, message, mergeFields(fields))
}

func LogDebug(ctx context.Context, logger AppLogger, message string, fields Fields) {
	logger.Debug(ctx, message, mergeFields(fields))
}

func LogTrace(ctx context.Context, logger AppLogger, message string, fields Fields) {
	logger.Trace(ctx, message, mergeFields(fields))
}

// mergeFields copia os campos para que o chamador possa reutilizar o mapa original.
func mergeFields(fields Fields) Fields {
	logData := make(Fields, len(fields)+1)
	for k, v := range fields {
		logData[k] = v
	}
	return logData
}

func MarshalPayload[T any](payload T) ([]byte, error) {
	return json.Marshal(payload)
}

func UnmarshalPayload[T any](data []byte) (T, error) {
	var payload T
	err := json.Unmarshal(data, &payload)
	return payload, err
}
