// Package export writes recommendation results into a new Google
// Spreadsheet owned by the caller.
package export

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Result points at the created spreadsheet.
type Result struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

const defaultTitle = "Solar Recommendations"

// CreateSpreadsheet creates a spreadsheet titled title using the caller's
// OAuth access token and writes the rows starting at A1.
func CreateSpreadsheet(ctx context.Context, accessToken, title string, rows [][]interface{}) (*Result, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	service, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = defaultTitle
	}

	spreadsheet, err := service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	_, err = service.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, "A1", &sheets.ValueRange{
		Values: rows,
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &Result{
		URL: fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheet.SpreadsheetId),
		ID:  spreadsheet.SpreadsheetId,
	}, nil
}
