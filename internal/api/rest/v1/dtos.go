package v1

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/validators"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout of every date rendered by the API
const DateLayout = "01/02/2006, 15:04:05"

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is returned by requests without a payload
type InfoResponse struct {
	Message string `json:"message"`
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// displayUSD renders an amount the way it is shown to traders, e.g. $1,234.50
func displayUSD(amount decimal.Decimal) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// CompanyResponse is the quote of a single company
type CompanyResponse struct {
	ID           uint    `json:"co_id"`
	Name         string  `json:"co_name"`
	Ticker       string  `json:"co_ticker"`
	Price        float64 `json:"co_price"`
	PriceDisplay string  `json:"co_price_display"`
	Change       float64 `json:"co_change"`
	PctChange    float64 `json:"co_pct_change"`
	Date         string  `json:"date"`
}

func newCompanyResponse(c *market.Company, loc *time.Location) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Ticker:       c.Symbol,
		Price:        c.Value.InexactFloat64(),
		PriceDisplay: displayUSD(c.Value),
		Change:       c.Change().Round(2).InexactFloat64(),
		PctChange:    c.PercentChange().InexactFloat64(),
		Date:         formatDate(c.LatestUpdate, loc),
	}
}

func newCompanyRows(companies []*market.Company, loc *time.Location) []CompanyResponse {
	rows := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		rows[i] = newCompanyResponse(c, loc)
	}
	return rows
}

// CompanyRefreshRequest asks for a company to be caught up
type CompanyRefreshRequest struct {
	CompanyID uint `json:"co_id" validate:"required"`
}

// Validate for validating CompanyRefreshRequest struct
func (r *CompanyRefreshRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CompanyRefreshResponse wraps a refreshed company
type CompanyRefreshResponse struct {
	Companies CompanyResponse `json:"companies"`
}

// CompanyRowsResponse lists companies
type CompanyRowsResponse struct {
	CompanyRows []CompanyResponse `json:"company_rows"`
}

// SeriesResponse is a dated series of values, oldest first
type SeriesResponse struct {
	Dates   []string  `json:"dates"`
	History []float64 `json:"history"`
}

func newPriceSeries(points []market.PricePoint, loc *time.Location) SeriesResponse {
	series := SeriesResponse{Dates: make([]string, len(points)), History: make([]float64, len(points))}
	for i, p := range points {
		series.Dates[i] = formatDate(p.RecordedAt, loc)
		series.History[i] = p.Value.InexactFloat64()
	}
	return series
}

func newNetWorthSeries(points []portfolio.NetWorthPoint) SeriesResponse {
	series := SeriesResponse{Dates: make([]string, len(points)), History: make([]float64, len(points))}
	for i, p := range points {
		series.Dates[i] = p.Date.Format(time.DateOnly)
		series.History[i] = p.Value.InexactFloat64()
	}
	return series
}

// RegisterRequest creates an account
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *RegisterRequest) toRegistration() users.Registration {
	return users.Registration{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate for validating LoginRequest struct
func (r *LoginRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// TokenResponse carries a bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// EmailExistsResponse answers verify_email
type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}

// UserInfoResponse describes the signed in user
type UserInfoResponse struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Pfp         string  `json:"pfp"`
	Role        string  `json:"role"`
	Cash        float64 `json:"cash"`
	CashDisplay string  `json:"cash_display"`
}

func newUserInfoResponse(u *users.User) UserInfoResponse {
	return UserInfoResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Pfp:         u.Pfp,
		Role:        u.Role,
		Cash:        u.Cash.InexactFloat64(),
		CashDisplay: displayUSD(u.Cash),
	}
}

// UpdateProfileRequest edits the signed in user; a null pfp keeps the current picture
type UpdateProfileRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Pfp       *string `json:"pfp"`
}

// IndexResponse is the landing page payload
type IndexResponse struct {
	User           *UserInfoResponse `json:"user"`
	LoginURL       string            `json:"login_url"`
	SignupURL      string            `json:"signup_url"`
	VerifyEmailURL string            `json:"verify_email_url"`
}

// TradeRequest buys or sells shares of a company
type TradeRequest struct {
	CompanyID uint  `json:"co_id" validate:"required"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// Validate for validating TradeRequest struct
func (r *TradeRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// TransactionResponse is one executed trade
type TransactionResponse struct {
	ID          string  `json:"id"`
	CompanyID   uint    `json:"co_id"`
	Ticker      string  `json:"co_ticker,omitempty"`
	CompanyName string  `json:"co_name,omitempty"`
	Kind        string  `json:"kind"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
	Date        string  `json:"date"`
}

func newTransactionResponse(tx *portfolio.Transaction, loc *time.Location) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		CompanyID: tx.CompanyID,
		Kind:      tx.Kind,
		Quantity:  tx.Quantity,
		Price:     tx.Price.InexactFloat64(),
		Total:     tx.Total.InexactFloat64(),
		Date:      formatDate(tx.ExecutedAt, loc),
	}
}

// TransactionsResponse lists trades, newest first
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// HoldingResponse is an open position
type HoldingResponse struct {
	CompanyID uint    `json:"co_id"`
	Name      string  `json:"co_name"`
	Ticker    string  `json:"co_ticker"`
	Shares    int64   `json:"shares"`
	AvgCost   float64 `json:"avg_cost"`
	Price     float64 `json:"price"`
	Value     float64 `json:"value"`
	Gain      float64 `json:"gain"`
}

// HoldingsResponse lists open positions by ticker
type HoldingsResponse struct {
	Holdings []HoldingResponse `json:"holdings"`
}

func newHoldingsResponse(holdings []portfolio.Holding) HoldingsResponse {
	resp := HoldingsResponse{Holdings: make([]HoldingResponse, len(holdings))}
	for i, h := range holdings {
		resp.Holdings[i] = HoldingResponse{
			CompanyID: h.CompanyID,
			Name:      h.Name,
			Ticker:    h.Symbol,
			Shares:    h.Shares,
			AvgCost:   h.AvgCost.InexactFloat64(),
			Price:     h.Price.InexactFloat64(),
			Value:     h.Value.InexactFloat64(),
			Gain:      h.Gain.InexactFloat64(),
		}
	}
	return resp
}

// PortfolioLinksResponse points the portfolio page at its data endpoints
type PortfolioLinksResponse struct {
	GetHoldingsURL       string `json:"get_holdings_url"`
	GetUserInfoURL       string `json:"get_user_info_url"`
	UpdateUserProfileURL string `json:"update_user_profile_url"`
	GetNetWorthURL       string `json:"get_net_worth_url"`
	GetTransactionsURL   string `json:"get_transactions_url"`
}

// TopicResponse is a forum topic
type TopicResponse struct {
	ID    uint   `json:"topic_id"`
	Topic string `json:"topic"`
}

// TopicsResponse lists topics alphabetically
type TopicsResponse struct {
	Topics []TopicResponse `json:"topics"`
}

// CreateTopicRequest adds a topic
type CreateTopicRequest struct {
	Topic string `json:"topic" validate:"required,notblank,max=128"`
}

// Validate for validating CreateTopicRequest struct
func (r *CreateTopicRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// PostSummaryResponse is a post listed under its topic
type PostSummaryResponse struct {
	ID     uint   `json:"id"`
	Title  string `json:"post_title"`
	Date   string `json:"post_date"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// TopicPageResponse is a topic with its posts, newest first
type TopicPageResponse struct {
	ID    uint                  `json:"topic_id"`
	Topic string                `json:"topic"`
	Posts []PostSummaryResponse `json:"posts"`
}

// PostBody is the stored form of a post
type PostBody struct {
	ID      uint   `json:"id"`
	TopicID uint   `json:"topic_id"`
	UserID  uint   `json:"user_id"`
	Title   string `json:"post_title"`
	Content string `json:"post_content"`
	Date    string `json:"post_date"`
}

func newPostBody(p *forum.Post, loc *time.Location) PostBody {
	return PostBody{
		ID:      p.ID,
		TopicID: p.TopicID,
		UserID:  p.UserID,
		Title:   p.Title,
		Content: p.Content,
		Date:    formatDate(p.PostedAt, loc),
	}
}

// PostResponse is a single post page
type PostResponse struct {
	Post        PostBody      `json:"post"`
	UserName    string        `json:"user_name"`
	Topic       TopicResponse `json:"topic"`
	ContentHTML string        `json:"content_html"`
}

// CreatePostRequest adds a post to a topic
type CreatePostRequest struct {
	Title   string `json:"post_title" validate:"required,notblank,max=256"`
	Content string `json:"post_content" validate:"required,max=65535"`
}

// Validate for validating CreatePostRequest struct
func (r *CreatePostRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CommentResponse is a comment as seen by the requesting user
type CommentResponse struct {
	ID        uint   `json:"id"`
	PostID    uint   `json:"post_id"`
	ParentIdx int64  `json:"parent_idx"`
	Comment   string `json:"comment"`
	Date      string `json:"comment_date"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
	Reaction  int    `json:"reaction"`
	// ReplyList is null on replies
	ReplyList []CommentResponse `json:"reply_list"`
}

// parentIdx encodes a missing parent as -1
func parentIdx(c *forum.Comment) int64 {
	if c.ParentID == nil {
		return -1
	}
	return int64(*c.ParentID)
}

func newCommentResponse(v forum.CommentView, loc *time.Location) CommentResponse {
	resp := CommentResponse{
		ID:        v.ID,
		PostID:    v.PostID,
		ParentIdx: parentIdx(v.Comment),
		Comment:   v.Text,
		Date:      formatDate(v.CommentedAt, loc),
		UserID:    v.UserID,
		UserName:  v.Author.Name,
		UserEmail: v.Author.Email,
		Likes:     v.Likes,
		Dislikes:  v.Dislikes,
		Reaction:  v.Reaction,
	}
	if v.IsTopLevel() {
		resp.ReplyList = make([]CommentResponse, len(v.Replies))
		for i, r := range v.Replies {
			resp.ReplyList[i] = newCommentResponse(r, loc)
		}
	}
	return resp
}

// CommentsResponse is the comment thread of a post
type CommentsResponse struct {
	Comments         []CommentResponse `json:"comments"`
	CurrentUserName  string            `json:"current_user_name"`
	CurrentUserEmail string            `json:"current_user_email"`
}

// SaveReactionRequest sets the requesting user's reaction to a comment
type SaveReactionRequest struct {
	CommentID uint `json:"comment_id" validate:"required"`
	Reaction  int  `json:"reaction" validate:"oneof=-1 0 1"`
}

// Validate for validating SaveReactionRequest struct
func (r *SaveReactionRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// PostCommentRequest adds a comment; a parent_idx of -1 or none makes it top-level
type PostCommentRequest struct {
	Text      string `json:"comment_text" validate:"required,notblank,max=4096"`
	ParentIdx *int64 `json:"parent_idx"`
}

// Validate for validating PostCommentRequest struct
func (r *PostCommentRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ParentID returns the parent comment id, nil for a top-level comment
func (r *PostCommentRequest) ParentID() *uint {
	if r.ParentIdx == nil || *r.ParentIdx < 0 {
		return nil
	}
	id := uint(*r.ParentIdx)
	return &id
}

// PostCommentResponse describes a created comment
type PostCommentResponse struct {
	ID        uint   `json:"id"`
	PostID    uint   `json:"post_id"`
	ParentIdx int64  `json:"parent_idx"`
	Date      string `json:"comment_date"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// PostCommentFailedResponse is returned when the parent of a reply does not exist
type PostCommentFailedResponse struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Note      string `json:"note"`
}

// Admin actions
const (
	ActionDumpTransactions = "dump_transactions"
	ActionSeedForum        = "seed_forum"
)

// AdminRequest runs a maintenance action
type AdminRequest struct {
	Action string `json:"action" validate:"required,oneof=dump_transactions seed_forum"`
}

// Validate for validating AdminRequest struct
func (r *AdminRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// PriceTickMessage is pushed to price stream clients for every tick
type PriceTickMessage struct {
	CompanyID uint    `json:"co_id"`
	Ticker    string  `json:"co_ticker"`
	Price     float64 `json:"co_price"`
	Date      string  `json:"date"`
}

func newPriceTickMessage(t market.Tick, loc *time.Location) PriceTickMessage {
	return PriceTickMessage{
		CompanyID: t.CompanyID,
		Ticker:    t.Symbol,
		Price:     t.Value.InexactFloat64(),
		Date:      formatDate(t.At, loc),
	}
}
