package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"agenda/pkg/model"
)

type ScheduleClient struct {
	httpClient *HttpClient
}

func NewScheduleClient(baseUrl string) *ScheduleClient {
	return &ScheduleClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *ScheduleClient) ApplyRecurring(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/schedules/recurring", body)
}

func (c *ScheduleClient) CheckConflicts(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/schedules/conflicts", body)
}

func (c *ScheduleClient) ApplyException(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/schedules/exceptions", body)
}

func (c *ScheduleClient) GetForResource(resourceID, startDate, endDate string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/schedules/resource/" + url.PathEscape(resourceID) + "?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *ScheduleClient) GetAvailability(resourceID, date string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)

	path := "/api/v1/schedules/resource/" + url.PathEscape(resourceID) + "/availability?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *ScheduleClient) GetEntry(id string) (*Response, error) {
	path := "/api/v1/schedules/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *ScheduleClient) DeleteEntry(id string) (*Response, error) {
	path := "/api/v1/schedules/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *ScheduleClient) DeleteForResource(resourceID, startDate, endDate string) (*Response, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}

	path := "/api/v1/schedules/resource/" + url.PathEscape(resourceID) + "?" + q.Encode()
	return c.httpClient.DELETE(path)
}

func (c *ScheduleClient) ApplyRecurringRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/schedules/recurring", rawBody)
}

func (c *ScheduleClient) DecodeEntry(resp *Response) (*model.ScheduleEntry, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode schedule entry wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var entry model.ScheduleEntry
	if err := json.Unmarshal(wrapper.Data, &entry); err != nil {
		return nil, fmt.Errorf("could not decode schedule entry json:\n%+v\n%s", resp.ToString(), err)
	}

	return &entry, nil
}

func (c *ScheduleClient) DecodeEntries(resp *Response) ([]*model.ScheduleEntry, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var entries []*model.ScheduleEntry
	if err := json.Unmarshal(wrapper.Data, &entries); err != nil {
		return nil, nil, fmt.Errorf("could not decode schedule entry list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return entries, metadata, nil
}

func (c *ScheduleClient) DecodeConflictReport(resp *Response) (*model.ConflictReport, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode conflict report wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var report model.ConflictReport
	if err := json.Unmarshal(wrapper.Data, &report); err != nil {
		return nil, fmt.Errorf("could not decode conflict report json:\n%+v\n%s", resp.ToString(), err)
	}

	return &report, nil
}
