package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"agenda/pkg/model"
)

type ResourceClient struct {
	httpClient *HttpClient
}

func NewResourceClient(baseUrl string) *ResourceClient {
	return &ResourceClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *ResourceClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/resources", body)
}

func (c *ResourceClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/resources?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *ResourceClient) Search(companyID string, subsidiaryID string, kind string, labels []string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("subsidiary_id", subsidiaryID)

	if companyID != "" {
		q.Set("company_id", companyID)
	}
	if kind != "" {
		q.Set("kind", kind)
	}
	if len(labels) > 0 {
		q.Set("labels", strings.Join(labels, ","))
	}

	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/resources/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *ResourceClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/resources/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *ResourceClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/resources/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *ResourceClient) Delete(id string) (*Response, error) {
	path := "/api/v1/resources/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *ResourceClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/resources", rawBody)
}

func (c *ResourceClient) UpdateRaw(id string, rawBody []byte) (*Response, error) {
	path := "/api/v1/resources/id/" + url.PathEscape(id)
	return c.httpClient.PATCHRaw(path, rawBody)
}

func (c *ResourceClient) DecodeResource(resp *Response) (*model.Resource, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode resource wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var res model.Resource
	if err := json.Unmarshal(wrapper.Data, &res); err != nil {
		return nil, fmt.Errorf("could not decode resource json:\n%+v\n%s", resp.ToString(), err)
	}

	return &res, nil
}

func (c *ResourceClient) DecodeResources(resp *Response) ([]*model.Resource, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var resources []*model.Resource
	if err := json.Unmarshal(wrapper.Data, &resources); err != nil {
		return nil, nil, fmt.Errorf("could not decode resource list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return resources, metadata, nil
}
