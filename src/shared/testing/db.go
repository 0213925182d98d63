package testlib

import (
	. "github.com/onsi/gomega"
	"github.com/veedubyou/split-studio/src/shared/history/storage"
	"github.com/veedubyou/split-studio/src/shared/lib/dynamo"
)

type historyRecord struct {
	ID string `dynamo:"id,hash"`
}

func MakeTestDB(testRegion string) dynamolib.DynamoDBWrapper {
	return dynamolib.NewDynamoDBWrapperFromConfig(DynamoConfig(testRegion))
}

func ResetDB(db dynamolib.DynamoDBWrapper) {
	DeleteAllTables(db)
	CreateAllTables(db)
}

func BeforeSuiteDB(testRegion string) dynamolib.DynamoDBWrapper {
	db := MakeTestDB(testRegion)
	DeleteAllTables(db)
	return db
}

func AfterSuiteDB(db dynamolib.DynamoDBWrapper) {
	DeleteAllTables(db)
}

func CreateAllTables(db dynamolib.DynamoDBWrapper) {
	err := db.CreateTable(historystorage.HistoryTable, historyRecord{}).Run()
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
}

func DeleteAllTables(db dynamolib.DynamoDBWrapper) {
	tableResults := db.ListTables()
	tableNames := ExpectSuccess(tableResults.All())

	for _, tableName := range tableNames {
		err := db.Table(tableName).DeleteTable().Run()
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
	}
}
