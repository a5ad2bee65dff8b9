package graphql

import "strings"

const CreateFeed = `
mutation CreateFeed($feed: FeedInput!) {
  createFeed(feed: $feed) {
    id
    name
    state
    type
  }
}
`

const QueryFeeds = `
query QueryFeeds($filter: FeedFilter!) {
  feeds(filter: $filter) {
    results {
      id
      name
      creationDate
      state
      owner {
        id
      }
      type
      reddit {
        subredditName
      }
      lastPostDate
      lastReadDate
      readCount
      schedulePolicy {
        recurrenceType
        repeatInterval
      }
    }
  }
}
`

const PromptConversation = `
mutation PromptConversation($prompt: String!, $id: ID) {
  promptConversation(prompt: $prompt, id: $id) {
    conversation {
      id
    }
    message {
      role
      author
      message
      tokens
      completionTime
    }
    messageCount
  }
}
`

// OperationName extrae el nombre de la operacion para logging.
func OperationName(operation string) string {
	fields := strings.Fields(operation)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] != "query" && fields[i] != "mutation" {
			continue
		}
		name := fields[i+1]
		if idx := strings.IndexAny(name, "({"); idx >= 0 {
			name = name[:idx]
		}
		return name
	}
	return "anonymous"
}
