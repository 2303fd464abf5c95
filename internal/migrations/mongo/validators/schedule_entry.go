package validators

import "go.mongodb.org/mongo-driver/bson"

var ScheduleEntryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"resource_id",
			"date",
			"day_of_week",
			"closed",
			"customized",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"resource_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"day_of_week": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  6,
			},

			// Empty string allowed: closed days carry no window.
			"open_time": bson.M{
				"bsonType": "string",
				"pattern":  "^(([01][0-9]|2[0-3]):[0-5][0-9])?$",
			},

			"close_time": bson.M{
				"bsonType": "string",
				"pattern":  "^(([01][0-9]|2[0-3]):[0-5][0-9])?$",
			},

			"closed": bson.M{
				"bsonType": "bool",
			},

			"customized": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
