package rubikit

// ButtonType is the kind of a keypad button.
type ButtonType string

const (
	ButtonSimple           ButtonType = "Simple"
	ButtonSelection        ButtonType = "Selection"
	ButtonCalendar         ButtonType = "Calendar"
	ButtonNumberPicker     ButtonType = "NumberPicker"
	ButtonStringPicker     ButtonType = "StringPicker"
	ButtonLocation         ButtonType = "Location"
	ButtonTextbox          ButtonType = "Textbox"
	ButtonPayment          ButtonType = "Payment"
	ButtonCameraImage      ButtonType = "CameraImage"
	ButtonCameraVideo      ButtonType = "CameraVideo"
	ButtonGalleryImage     ButtonType = "GalleryImage"
	ButtonGalleryVideo     ButtonType = "GalleryVideo"
	ButtonFile             ButtonType = "File"
	ButtonAudio            ButtonType = "Audio"
	ButtonRecordAudio      ButtonType = "RecordAudio"
	ButtonMyPhoneNumber    ButtonType = "MyPhoneNumber"
	ButtonMyLocation       ButtonType = "MyLocation"
	ButtonLink             ButtonType = "Link"
	ButtonAskMyPhoneNumber ButtonType = "AskMyPhoneNumber"
	ButtonAskLocation      ButtonType = "AskLocation"
	ButtonBarcode          ButtonType = "Barcode"
)

// Button is a single keypad button.
type Button struct {
	ID           string                  `json:"id"`
	Type         ButtonType              `json:"type"`
	ButtonText   string                  `json:"button_text,omitempty"`
	Selection    *ButtonSelectionOptions `json:"button_selection,omitempty"`
	Calendar     *ButtonCalendarOptions  `json:"button_calendar,omitempty"`
	NumberPicker *ButtonNumberPick       `json:"button_number_picker,omitempty"`
	StringPicker *ButtonStringPick       `json:"button_string_picker,omitempty"`
	Location     *ButtonLocationOptions  `json:"button_location,omitempty"`
	Textbox      *ButtonTextboxOptions   `json:"button_textbox,omitempty"`
	Payment      *ButtonPaymentOptions   `json:"button_payment,omitempty"`
	URL          string                  `json:"url,omitempty"`
}

// ButtonSelectionItem is one entry of a selection button.
type ButtonSelectionItem struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ButtonSelectionOptions configures a Selection button.
type ButtonSelectionOptions struct {
	SelectionID      string                `json:"selection_id,omitempty"`
	SearchType       string                `json:"search_type,omitempty"`
	GetType          string                `json:"get_type,omitempty"`
	Items            []ButtonSelectionItem `json:"items,omitempty"`
	IsMultiSelection bool                  `json:"is_multi_selection,omitempty"`
	ColumnsCount     string                `json:"columns_count,omitempty"`
	Title            string                `json:"title,omitempty"`
}

// ButtonCalendarOptions configures a Calendar button.
type ButtonCalendarOptions struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	DefaultValue string `json:"default_value,omitempty"`
	MinYear      string `json:"min_year,omitempty"`
	MaxYear      string `json:"max_year,omitempty"`
}

// ButtonNumberPick configures a NumberPicker button.
type ButtonNumberPick struct {
	Title        string `json:"title"`
	MinValue     string `json:"min_value"`
	MaxValue     string `json:"max_value"`
	DefaultValue string `json:"default_value,omitempty"`
}

// ButtonStringPick configures a StringPicker button.
type ButtonStringPick struct {
	Items        []string `json:"items"`
	DefaultValue string   `json:"default_value,omitempty"`
	Title        string   `json:"title,omitempty"`
}

// ButtonLocationOptions configures a Location button.
type ButtonLocationOptions struct {
	Type                   string    `json:"type"`
	LocationImageURL       string    `json:"location_image_url"`
	DefaultPointerLocation *Location `json:"default_pointer_location,omitempty"`
	DefaultMapLocation     *Location `json:"default_map_location,omitempty"`
	Title                  string    `json:"title,omitempty"`
}

// ButtonTextboxOptions configures a Textbox button.
type ButtonTextboxOptions struct {
	TypeLine     string `json:"type_line"`
	TypeKeypad   string `json:"type_keypad"`
	PlaceHolder  string `json:"place_holder,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	Title        string `json:"title,omitempty"`
}

// ButtonPaymentOptions configures a Payment button.
type ButtonPaymentOptions struct {
	Title       string `json:"title"`
	Amount      int    `json:"amount"`
	Description string `json:"description,omitempty"`
}

// KeypadRow is one row of buttons.
type KeypadRow struct {
	Buttons []Button `json:"buttons"`
}

// Keypad is a chat or inline keypad.
// ResizeKeyboard and OneTimeKeyboard only apply to chat keypads.
type Keypad struct {
	Rows            []KeypadRow `json:"rows"`
	ResizeKeyboard  *bool       `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard *bool       `json:"on_time_keyboard,omitempty"`
}

// SimpleButton returns a plain text button.
func SimpleButton(id, text string) Button {
	return Button{ID: id, Type: ButtonSimple, ButtonText: text}
}

// TypedButton returns a button that carries no extra configuration,
// such as ButtonCameraImage or ButtonMyLocation.
func TypedButton(id string, t ButtonType, text string) Button {
	return Button{ID: id, Type: t, ButtonText: text}
}

// SelectionButton returns a Selection button.
func SelectionButton(id, text string, sel ButtonSelectionOptions) Button {
	return Button{ID: id, Type: ButtonSelection, ButtonText: text, Selection: &sel}
}

// CalendarButton returns a Calendar button titled by cal.Title.
func CalendarButton(id string, cal ButtonCalendarOptions) Button {
	return Button{ID: id, Type: ButtonCalendar, ButtonText: cal.Title, Calendar: &cal}
}

// NumberPickerButton returns a NumberPicker button titled by p.Title.
func NumberPickerButton(id string, p ButtonNumberPick) Button {
	return Button{ID: id, Type: ButtonNumberPicker, ButtonText: p.Title, NumberPicker: &p}
}

// StringPickerButton returns a StringPicker button.
func StringPickerButton(id string, p ButtonStringPick) Button {
	return Button{ID: id, Type: ButtonStringPicker, ButtonText: orDefault(p.Title, "choice"), StringPicker: &p}
}

// LocationButton returns a Location button.
func LocationButton(id string, loc ButtonLocationOptions) Button {
	return Button{ID: id, Type: ButtonLocation, ButtonText: orDefault(loc.Title, "location"), Location: &loc}
}

// TextboxButton returns a Textbox button.
func TextboxButton(id string, tb ButtonTextboxOptions) Button {
	return Button{ID: id, Type: ButtonTextbox, ButtonText: orDefault(tb.Title, "Text"), Textbox: &tb}
}

// PaymentButton returns a Payment button.
func PaymentButton(id string, p ButtonPaymentOptions) Button {
	return Button{ID: id, Type: ButtonPayment, ButtonText: p.Title, Payment: &p}
}

// LinkButton returns a button that opens url.
func LinkButton(id, text, url string) Button {
	return Button{ID: id, Type: ButtonLink, ButtonText: text, URL: url}
}

// ChatKeypadBuilder assembles a chat (reply) keypad row by row.
type ChatKeypadBuilder struct {
	rows []KeypadRow
}

// NewChatKeypad returns an empty chat keypad builder.
func NewChatKeypad() *ChatKeypadBuilder {
	return &ChatKeypadBuilder{}
}

// Row appends a row of buttons.
func (b *ChatKeypadBuilder) Row(buttons ...Button) *ChatKeypadBuilder {
	b.rows = append(b.rows, KeypadRow{Buttons: buttons})
	return b
}

// Build returns the keypad.
func (b *ChatKeypadBuilder) Build(resize, oneTime bool) Keypad {
	return Keypad{
		Rows:            b.rows,
		ResizeKeyboard:  &resize,
		OneTimeKeyboard: &oneTime,
	}
}

// InlineKeypadBuilder assembles an inline keypad row by row.
type InlineKeypadBuilder struct {
	rows []KeypadRow
	err  error
}

// NewInlineKeypad returns an empty inline keypad builder.
func NewInlineKeypad() *InlineKeypadBuilder {
	return &InlineKeypadBuilder{}
}

// Row appends a row of buttons. An empty row makes Build fail.
func (b *InlineKeypadBuilder) Row(buttons ...Button) *InlineKeypadBuilder {
	if len(buttons) == 0 {
		b.err = ErrEmptyRow
		return b
	}
	b.rows = append(b.rows, KeypadRow{Buttons: buttons})
	return b
}

// Build returns the keypad, or ErrEmptyRow if any row was empty.
func (b *InlineKeypadBuilder) Build() (Keypad, error) {
	if b.err != nil {
		return Keypad{}, b.err
	}
	return Keypad{Rows: b.rows}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
