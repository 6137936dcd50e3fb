package apimodels

type Response struct {
	Status  string      `json:"status"`            //handling result fail/success
	Message string      `json:"message,omitempty"` //error message
	Data    interface{} `json:"data,omitempty"`    //response payload
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count"` //total matching rows, filter applied
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func NewScrollerResponse(data interface{}, rowCount int64, page, limit int) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
		Page:     page,
		Limit:    limit,
	}
}

type Pagination struct {
	Limit int `json:"limit" query:"limit"` // rows per page
	Page  int `json:"page" query:"page"`   // page number (1,2,3..)
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func (r Pagination) GetOffset() int {
	page, limit := r.GetPage()
	return (page - 1) * limit
}

// IsOutOfRange reports whether the requested page lies past the last
// matching row. Page 1 of an empty result set is always in range.
func (r Pagination) IsOutOfRange(rowCount int64) bool {
	page, _ := r.GetPage()
	if page == 1 {
		return false
	}
	return rowCount > 0 && int64(r.GetOffset()) >= rowCount
}
