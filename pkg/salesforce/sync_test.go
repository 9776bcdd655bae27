package salesforce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Query(ctx context.Context, soql string, out any) error {
	args := m.Called(ctx, soql, out)
	return args.Error(0)
}

func (m *MockClient) InsertOne(ctx context.Context, sObjectName string, record map[string]any) (string, error) {
	args := m.Called(ctx, sObjectName, record)
	return args.String(0), args.Error(1)
}

func (m *MockClient) UpdateCollection(ctx context.Context, sObjectName string, records []CollectionRecord) ([]CollectionResult, error) {
	args := m.Called(ctx, sObjectName, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CollectionResult), args.Error(1)
}

func TestFindAccountByWebsite(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("Query", ctx, mock.MatchedBy(func(soql string) bool {
		return soql == "SELECT "+accountSelect+" FROM Account WHERE Website LIKE 'https://sunstonecp.com' LIMIT 1"
	}), mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(2).(*[]Account)
		*out = []Account{{ID: "001xx", Name: "Sunstone Capital"}}
	}).Return(nil).Once()

	account, err := FindAccountByWebsite(ctx, mc, "https://sunstonecp.com")

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "001xx", account.ID)
	mc.AssertExpectations(t)
}

func TestFindAccountByWebsite_NotFound(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("Query", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	account, err := FindAccountByWebsite(ctx, mc, "https://nosuch.example")

	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestFindAccountByWebsite_EscapesQuotes(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("Query", ctx, mock.MatchedBy(func(soql string) bool {
		return soql == "SELECT "+accountSelect+" FROM Account WHERE Website LIKE 'o\\'neil.com' LIMIT 1"
	}), mock.Anything).Return(nil).Once()

	_, err := FindAccountByWebsite(ctx, mc, "o'neil.com")

	require.NoError(t, err)
	mc.AssertExpectations(t)
}

func TestCreateAccount(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("InsertOne", ctx, "Account", map[string]any{"Name": "Sunstone Capital"}).
		Return("001xx", nil).Once()

	id, err := CreateAccount(ctx, mc, map[string]any{"Name": "Sunstone Capital"})

	require.NoError(t, err)
	assert.Equal(t, "001xx", id)
}

func TestCreateAccount_NameRequired(t *testing.T) {
	_, err := CreateAccount(context.Background(), new(MockClient), map[string]any{"Website": "x.com"})
	assert.Error(t, err)
}

func TestCreateContact_LinksAccount(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("InsertOne", ctx, "Contact", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["AccountId"] == "001xx" && fields["LastName"] == "Smith"
	})).Return("003xx", nil).Once()

	id, err := CreateContact(ctx, mc, "001xx", map[string]any{"LastName": "Smith"})

	require.NoError(t, err)
	assert.Equal(t, "003xx", id)
	mc.AssertExpectations(t)
}

func TestCreateContact_AccountRequired(t *testing.T) {
	_, err := CreateContact(context.Background(), new(MockClient), "", map[string]any{"LastName": "Smith"})
	assert.Error(t, err)
}

func TestBulkUpdateAccounts_Batches(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	updates := make([]AccountUpdate, 250)
	for i := range updates {
		updates[i] = AccountUpdate{ID: "001xx", Fields: map[string]any{"Type": "Prospect"}}
	}

	mc.On("UpdateCollection", ctx, "Account", mock.MatchedBy(func(records []CollectionRecord) bool {
		return len(records) == 200
	})).Return(make([]CollectionResult, 200), nil).Once()
	mc.On("UpdateCollection", ctx, "Account", mock.MatchedBy(func(records []CollectionRecord) bool {
		return len(records) == 50
	})).Return(make([]CollectionResult, 50), nil).Once()

	results, err := BulkUpdateAccounts(ctx, mc, updates)

	require.NoError(t, err)
	assert.Len(t, results, 250)
	mc.AssertExpectations(t)
}

func TestBulkUpdateAccounts_Empty(t *testing.T) {
	results, err := BulkUpdateAccounts(context.Background(), new(MockClient), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}
