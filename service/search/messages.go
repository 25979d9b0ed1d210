package search

import "fmt"

const defaultProductNoun = "sản phẩm"

const (
	msgNotFound       = "Rất tiếc, mình không tìm thấy sản phẩm nào phù hợp với yêu cầu của bạn."
	msgFound          = "Mình tìm thấy %d mẫu %s phù hợp với yêu cầu của bạn, đây là một số sản phẩm:"
	msgSuggestSize    = "Bạn có muốn thử tìm %s với size %s không?"
	msgSuggestColor   = "Bạn có muốn thử tìm %s với màu %s không?"
	msgNoMore         = "Không còn sản phẩm nào để hiển thị thêm."
	msgWantMore       = "Bạn có muốn xem thêm sản phẩm nữa không?"
	msgThatsAll       = "Đây là tất cả sản phẩm mình tìm được nha!"
	msgRejected       = "Không sao, bạn có thể cung cấp thêm thông tin khác nếu muốn nhé!"
	msgAcceptedFound  = "Mình tìm thấy %d mẫu %s với %s %s:"
	msgAcceptedNone   = "Rất tiếc, không tìm thấy sản phẩm nào với bộ lọc mới."
	msgGenericFailure = "Xin lỗi, hệ thống đang gặp sự cố. Bạn vui lòng thử lại sau nhé!"
)

// ProductListType tags the structured product payload.
const ProductListType = "product_list"

// Message is either plain text or a structured payload for the chat surface.
type Message struct {
	Text   string       `json:"text,omitempty"`
	Custom *ProductList `json:"custom,omitempty"`
}

type ProductList struct {
	Type  string               `json:"type"`
	Items []ProductSummaryView `json:"items"`
}

func textMessage(format string, args ...interface{}) Message {
	if len(args) == 0 {
		return Message{Text: format}
	}
	return Message{Text: fmt.Sprintf(format, args...)}
}

func listMessage(items []ProductSummaryView) Message {
	return Message{Custom: &ProductList{Type: ProductListType, Items: items}}
}

func suggestionMessage(f FilterSet, s *Suggestion) Message {
	if s.Dimension == DimensionSize {
		return textMessage(msgSuggestSize, f.DisplayName(), s.Value)
	}
	return textMessage(msgSuggestColor, f.DisplayName(), s.Value)
}

// FailureMessage is the apology shown when a collaborator is down.
func FailureMessage() Message {
	return textMessage(msgGenericFailure)
}
