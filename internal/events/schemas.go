package events

const envelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "type", "version", "occurredAt", "producer", "correlationId", "payload"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "type": {"type": "string", "enum": ["order.created", "order.notification", "order.activity"]},
    "version": {"type": "integer", "minimum": 1},
    "occurredAt": {"type": "string", "format": "date-time"},
    "producer": {"type": "string", "minLength": 1},
    "correlationId": {"type": "string"},
    "payload": {}
  }
}`

const orderCreatedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["orderId", "hawkerCenter", "userId", "contact", "stalls"],
  "properties": {
    "orderId": {"type": "string", "minLength": 1},
    "hawkerCenter": {"type": "string", "minLength": 1},
    "userId": {"type": "string", "minLength": 1},
    "contact": {"type": "string", "minLength": 1},
    "stalls": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "required": ["name", "quantity", "waitTime", "price"],
          "properties": {
            "name": {"type": "string", "minLength": 1},
            "quantity": {"type": "integer", "minimum": 1},
            "waitTime": {"type": "integer", "minimum": 0},
            "price": {"type": ["string", "number"]}
          }
        }
      }
    }
  }
}`

const notificationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["orderId", "userId", "contact", "status"],
  "properties": {
    "orderId": {"type": "string", "minLength": 1},
    "userId": {"type": "string"},
    "contact": {"type": "string", "minLength": 1},
    "status": {"type": "string", "enum": ["success", "failed", "completed"]},
    "hawkerCenter": {"type": "string"},
    "stallName": {"type": "string"}
  }
}`

const activitySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "object",
    "required": ["hawkerCenter", "stallName", "quantity", "orderStartTime", "orderEndTime"],
    "properties": {
      "hawkerCenter": {"type": "string", "minLength": 1},
      "stallName": {"type": "string", "minLength": 1},
      "quantity": {"type": "integer", "minimum": 1},
      "orderStartTime": {"type": "string", "format": "date-time"},
      "orderEndTime": {"type": "string", "format": "date-time"}
    }
  }
}`
