package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-dashboard-pipeline/internal/model"

	"github.com/stretchr/testify/require"
)

const launchCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,525,F9 v1.0  B0005,v1.0
3,VAFB SLC-4E,0,500,F9 v1.1  B1003,v1.1
4,KSC LC-39A,1,2490,F9 FT B1031.1,FT
5,KSC LC-39A,1,5300,F9 FT B1032.1,FT
6,CCAFS SLC-40,1,9600,F9 B4 B1043.1,B4
`

const salesCSV = `Date,Year,Month,Recession,Consumer_Confidence,Seasonality_Weight,Price,Advertising_Expenditure,Competition,GDP,Growth_Rate,unemployment_rate,Automobile_Sales,Vehicle_Type,City
1/31/1980,1980,Jan,1,108.24,0.5,27483.57,1558,7,60.223,0.01,5.4,456,Supperminicar,Georgia
2/29/1980,1980,Feb,1,98.75,0.75,24308.5,3048,4,45.986,-0.31,4.8,555.9,Supperminicar,New York
3/31/1980,1980,Mar,1,107.48,0.2,28238.49,3137,3,35.141,-0.52,3.4,620,Mediumfamilycar,New York
1/31/1981,1981,Jan,0,120.1,0.5,30000,2000,5,50,0.2,2.1,1200,Sports,Illinois
2/28/1981,1981,Feb,0,118.3,0.75,31000,2500,5,51,0.2,2.3,1300,Sports,California
3/31/1981,1981,Mar,0,115.7,0.2,29000,1500,6,52,0.1,2.6,900,Smallfamiliycar,Georgia
`

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadFixture(t *testing.T, content string, rules model.ValidationRules) *model.Table {
	t.Helper()
	table, err := LoadTable(context.Background(), writeCSV(t, "data.csv", content), rules)
	require.NoError(t, err)
	return table
}

func launchFixture(t *testing.T) *model.Table {
	return loadFixture(t, launchCSV, LaunchRules())
}

func salesFixture(t *testing.T) *model.Table {
	return loadFixture(t, salesCSV, SalesRules())
}

// scenarioTable is the three-launch example used throughout the filter tests
func scenarioTable(t *testing.T) *model.Table {
	t.Helper()
	table, err := model.NewTable([]string{ColLaunchSite, ColPayloadMass, ColLaunchClass}, [][]model.Value{
		{model.TextValue("A"), model.NumberValue(100), model.NumberValue(1)},
		{model.TextValue("A"), model.NumberValue(5000), model.NumberValue(0)},
		{model.TextValue("B"), model.NumberValue(200), model.NumberValue(1)},
	})
	require.NoError(t, err)
	return table
}

func intPtr(n int) *int { return &n }
