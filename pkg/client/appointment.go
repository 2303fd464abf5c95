package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"agenda/pkg/model"
)

type AppointmentClient struct {
	httpClient *HttpClient
}

func NewAppointmentClient(baseUrl string) *AppointmentClient {
	return &AppointmentClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *AppointmentClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/appointments", body)
}

func (c *AppointmentClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/appointments?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *AppointmentClient) Search(resourceID string, professionalID string, customerID string, startTime string, endTime string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if resourceID != "" {
		q.Set("resource_id", resourceID)
	}
	if professionalID != "" {
		q.Set("professional_id", professionalID)
	}
	if customerID != "" {
		q.Set("customer_id", customerID)
	}
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	if endTime != "" {
		q.Set("end_time", endTime)
	}

	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/appointments/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *AppointmentClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *AppointmentClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *AppointmentClient) UpdateStatus(id string, status string) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id) + "/status"
	return c.httpClient.PATCH(path, map[string]string{"status": status})
}

func (c *AppointmentClient) Delete(id string) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *AppointmentClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/appointments", rawBody)
}

func (c *AppointmentClient) UpdateRaw(id string, rawBody []byte) (*Response, error) {
	path := "/api/v1/appointments/id/" + url.PathEscape(id)
	return c.httpClient.PATCHRaw(path, rawBody)
}

func (c *AppointmentClient) DecodeAppointment(resp *Response) (*model.Appointment, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode appointment wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var appt model.Appointment
	if err := json.Unmarshal(wrapper.Data, &appt); err != nil {
		return nil, fmt.Errorf("could not decode appointment json:\n%+v\n%s", resp.ToString(), err)
	}

	return &appt, nil
}

func (c *AppointmentClient) DecodeAppointments(resp *Response) ([]*model.Appointment, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var appts []*model.Appointment
	if err := json.Unmarshal(wrapper.Data, &appts); err != nil {
		return nil, nil, fmt.Errorf("could not decode appointment list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return appts, metadata, nil
}
